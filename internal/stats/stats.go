// Package stats computes typing speed and accuracy.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/taja/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Metrics computes WPM, accuracy, and character counts for a single
// sentence window. Comparison is per rune; input runes beyond the end
// of the target count as errors.
func Metrics(input, target string, elapsedMs int64, lang model.Language) model.GameStats {
	return RoundMetrics(input, target, elapsedMs, lang, 0)
}

// RoundMetrics is Metrics with correct characters carried over from
// sentences completed earlier in the round. Carried characters count
// toward WPM but not toward accuracy, which describes the current
// input only.
func RoundMetrics(input, target string, elapsedMs int64, lang model.Language, carriedCorrect int) model.GameStats {
	correct, errors := compareRunes(input, target)
	total := correct + errors

	accuracy := 0.0
	if total > 0 {
		accuracy = 100 * float64(correct) / float64(total)
	}

	return model.GameStats{
		WPM:            WPM(carriedCorrect+correct, elapsedMs, lang),
		Accuracy:       accuracy,
		Errors:         errors,
		CorrectChars:   correct,
		TotalChars:     total,
		ElapsedSeconds: ElapsedSeconds(elapsedMs),
	}
}

// compareRunes counts matching and mismatching input runes against the
// target.
func compareRunes(input, target string) (correct, errors int) {
	in := []rune(input)
	tg := []rune(target)
	for i := range in {
		if i < len(tg) && in[i] == tg[i] {
			correct++
		} else {
			errors++
		}
	}
	return correct, errors
}

// WPM converts matched characters and elapsed time to words per
// minute, rounded to one decimal. Zero elapsed time yields zero.
func WPM(chars int, elapsedMs int64, lang model.Language) float64 {
	minutes := float64(elapsedMs) / 60000.0
	if minutes <= 0 {
		return 0
	}
	return Round10(wordsTyped(chars, lang) / minutes)
}

// wordsTyped converts matched characters to typed words. Korean counts
// one word per character; other languages count five characters per
// word.
func wordsTyped(chars int, lang model.Language) float64 {
	if lang == model.LangKorean {
		return float64(chars)
	}
	return float64(chars) / 5.0
}

// Round10 rounds to one decimal place.
func Round10(x float64) float64 {
	return math.Round(x*10) / 10
}

// ElapsedSeconds converts milliseconds to whole seconds, rounding half
// away from zero.
func ElapsedSeconds(elapsedMs int64) int {
	if elapsedMs <= 0 {
		return 0
	}
	return int(math.Round(float64(elapsedMs) / 1000.0))
}

// BatchAverage averages the last n snapshots. WPM keeps one decimal,
// integer fields round to the nearest whole value.
func BatchAverage(history []model.GameStats, n int) model.GameStats {
	if n > len(history) {
		n = len(history)
	}
	if n <= 0 {
		return model.GameStats{}
	}
	batch := history[len(history)-n:]
	var wpm, acc, errs, correct, total, secs float64
	for _, s := range batch {
		wpm += s.WPM
		acc += s.Accuracy
		errs += float64(s.Errors)
		correct += float64(s.CorrectChars)
		total += float64(s.TotalChars)
		secs += float64(s.ElapsedSeconds)
	}
	den := float64(n)
	return model.GameStats{
		WPM:            Round10(wpm / den),
		Accuracy:       acc / den,
		Errors:         int(math.Round(errs / den)),
		CorrectChars:   int(math.Round(correct / den)),
		TotalChars:     int(math.Round(total / den)),
		ElapsedSeconds: int(math.Round(secs / den)),
	}
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
