package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// buildMainMenuKeyboard builds the keyboard for the main menu screen.
func buildMainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎮 Play", buildPlayCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏆 Scoreboard", buildScoresCallback()),
		),
	)
}

// buildOptionKeyboard builds a one-button-per-row keyboard where each button
// carries its option index.
func buildOptionKeyboard(options []string, build func(index int) string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for i, option := range options {
		button := tgbotapi.NewInlineKeyboardButtonData(option, build(i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildCategoryKeyboard(categories []string) tgbotapi.InlineKeyboardMarkup {
	return buildOptionKeyboard(categories, buildCategoryCallback)
}

func buildDifficultyKeyboard(difficulties []string) tgbotapi.InlineKeyboardMarkup {
	return buildOptionKeyboard(difficulties, buildDifficultyCallback)
}

func buildTypeKeyboard(types []string) tgbotapi.InlineKeyboardMarkup {
	return buildOptionKeyboard(types, buildTypeCallback)
}

func buildAnswerKeyboard(answers []string) tgbotapi.InlineKeyboardMarkup {
	return buildOptionKeyboard(answers, buildAnswerCallback)
}

// buildScoreboardKeyboard builds the keyboard for the scoreboard screen.
func buildScoreboardKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildAgainCallback()),
		),
	)
}
