package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionPlay       = "play"
	actionCategory   = "cat"
	actionDifficulty = "diff"
	actionType       = "type"
	actionAnswer     = "ans"
	actionScores     = "scores"
	actionAgain      = "again"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildPlayCallback() string {
	return callbackData{Action: actionPlay}.encode()
}

func buildScoresCallback() string {
	return callbackData{Action: actionScores}.encode()
}

func buildAgainCallback() string {
	return callbackData{Action: actionAgain}.encode()
}

// buildCategoryCallback builds callback data for choosing a category by index.
func buildCategoryCallback(index int) string {
	return callbackData{
		Action: actionCategory,
		Params: []string{strconv.Itoa(index)},
	}.encode()
}

// buildDifficultyCallback builds callback data for choosing a difficulty by index.
func buildDifficultyCallback(index int) string {
	return callbackData{
		Action: actionDifficulty,
		Params: []string{strconv.Itoa(index)},
	}.encode()
}

// buildTypeCallback builds callback data for choosing a question type by index.
func buildTypeCallback(index int) string {
	return callbackData{
		Action: actionType,
		Params: []string{strconv.Itoa(index)},
	}.encode()
}

// buildAnswerCallback builds callback data for answering the current question by index.
func buildAnswerCallback(index int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(index)},
	}.encode()
}

// indexParam parses a single non-negative index parameter.
func indexParam(cd callbackData) (int, bool) {
	if len(cd.Params) != 1 {
		return 0, false
	}
	i, err := strconv.Atoi(cd.Params[0])
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
