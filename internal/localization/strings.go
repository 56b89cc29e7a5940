package localization

import "github.com/wwoosshh/Nortoria/pkg/script"

// uiStrings are the notification and status strings the interpreter surface
// uses. Format strings take the arguments noted next to the Korean entry.
var uiStrings = map[script.Language]map[string]string{
	script.Korean: {
		"NewGame":           "게임 시작",
		"Continue":          "이어하기",
		"Resume":            "게임으로 돌아가기",
		"ReturnToTitle":     "타이틀로 돌아가기",
		"AutoPlayMode":      "자동 재생 중",
		"ClickToContinue":   "클릭하여 계속",
		"EpisodeCompleted":  "에피소드가 완료되었습니다!",
		"ChapterCompleted":  "장이 완료되었습니다!",
		"GameCompleted":     "축하합니다! 모든 스토리를 완료했습니다!",
		"NextEpisodePrompt": "다음 막으로 진행하시겠습니까?",
		"NextChapterPrompt": "다음 장으로 진행하시겠습니까?",
		"AutoSaved":         "자동으로 저장되었습니다.",
		"GameSaved":         "게임이 저장되었습니다.",
		"GameLoaded":        "게임을 불러왔습니다.",
		"Error":             "오류",
		"Information":       "알림",
		"PositionFormat":    "%d장 %d막", // chapter, episode
		"ItemGained":        "%s x%d을(를) 획득했습니다!",
		"ItemLost":          "%s x%d을(를) 잃었습니다.",
		"ItemMissing":       "필요한 아이템이 부족합니다.",
		"CurrencyGained":    "%d 골드를 획득했습니다!",
		"CurrencyLost":      "%d 골드를 잃었습니다.",
	},
	script.English: {
		"NewGame":           "New Game",
		"Continue":          "Continue",
		"Resume":            "Resume Game",
		"ReturnToTitle":     "Return to Title",
		"AutoPlayMode":      "Auto Play",
		"ClickToContinue":   "Click to continue",
		"EpisodeCompleted":  "Episode completed!",
		"ChapterCompleted":  "Chapter completed!",
		"GameCompleted":     "Congratulations! You have completed the whole story!",
		"NextEpisodePrompt": "Continue to the next episode?",
		"NextChapterPrompt": "Continue to the next chapter?",
		"AutoSaved":         "Auto saved.",
		"GameSaved":         "Game saved.",
		"GameLoaded":        "Game loaded.",
		"Error":             "Error",
		"Information":       "Information",
		"PositionFormat":    "Chapter %d, Episode %d",
		"ItemGained":        "Obtained %s x%d!",
		"ItemLost":          "Lost %s x%d.",
		"ItemMissing":       "You are missing a required item.",
		"CurrencyGained":    "Gained %d gold!",
		"CurrencyLost":      "Lost %d gold.",
	},
	script.Japanese: {
		"NewGame":           "ニューゲーム",
		"Continue":          "コンティニュー",
		"Resume":            "ゲームに戻る",
		"ReturnToTitle":     "タイトルに戻る",
		"AutoPlayMode":      "オート再生中",
		"ClickToContinue":   "クリックして続行",
		"EpisodeCompleted":  "エピソード完了！",
		"ChapterCompleted":  "チャプター完了！",
		"GameCompleted":     "おめでとうございます！すべてのストーリーを完了しました！",
		"NextEpisodePrompt": "次のエピソードに進みますか？",
		"NextChapterPrompt": "次のチャプターに進みますか？",
		"AutoSaved":         "自動保存されました。",
		"GameSaved":         "ゲームが保存されました。",
		"GameLoaded":        "ゲームをロードしました。",
		"Error":             "エラー",
		"Information":       "情報",
		"PositionFormat":    "%d章 %d幕",
		"ItemGained":        "%s x%d を獲得しました！",
		"ItemLost":          "%s x%d を失いました。",
		"ItemMissing":       "必要なアイテムが足りません。",
		"CurrencyGained":    "%d ゴールドを獲得しました！",
		"CurrencyLost":      "%d ゴールドを失いました。",
	},
}

// characterNames maps speaker keys from scripts to display names.
var characterNames = map[string]script.Text{
	"rashi": {
		script.Korean:   "라시 치우비",
		script.English:  "Rashi Chiuvi",
		script.Japanese: "ラシ・チウビ",
	},
	"semilia": {
		script.Korean:   "세밀리아 시밀리",
		script.English:  "Semilia Simili",
		script.Japanese: "セミリア・シミリ",
	},
	"gruvit": {
		script.Korean:   "그루빗",
		script.English:  "Gruvit",
		script.Japanese: "グルビット",
	},
	"aser": {
		script.Korean:   "아세르",
		script.English:  "Aser",
		script.Japanese: "アセル",
	},
	"hachuvi": {
		script.Korean:   "하츄비",
		script.English:  "Hachuvi",
		script.Japanese: "ハチュビ",
	},
	"atsumi": {
		script.Korean:   "아츠미",
		script.English:  "Atsumi",
		script.Japanese: "アツミ",
	},
	"selmon": {
		script.Korean:   "셀몬",
		script.English:  "Selmon",
		script.Japanese: "セルモン",
	},
}
