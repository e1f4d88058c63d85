package topic

import "strings"

// General はどの話題にも一致しなかったときの番兵ラベル。
const General = "general"

// entry binds a topic label to its trigger keywords. Order matters:
// the first label with a matching keyword wins.
type entry struct {
	label    string
	keywords []string
}

var vocabulary = []entry{
	{label: "仕事", keywords: []string{"仕事", "会社", "職場", "残業", "会議", "出勤"}},
	{label: "学校", keywords: []string{"学校", "授業", "テスト", "宿題", "先生"}},
	{label: "家族", keywords: []string{"家族", "母", "父", "兄", "姉", "子ども", "子供"}},
	{label: "友達", keywords: []string{"友達", "友人", "仲間", "飲み会"}},
	{label: "食事", keywords: []string{"食事", "ご飯", "ごはん", "ランチ", "ディナー", "カフェ", "料理"}},
	{label: "運動", keywords: []string{"運動", "スポーツ", "ジム", "ランニング", "散歩", "筋トレ"}},
	{label: "旅行", keywords: []string{"旅行", "旅", "観光", "温泉"}},
	{label: "趣味", keywords: []string{"趣味", "音楽", "映画", "ゲーム", "読書", "本"}},
	{label: "天気", keywords: []string{"天気", "雨", "晴れ", "雪", "暑", "寒"}},
	{label: "健康", keywords: []string{"健康", "体調", "風邪", "病院", "睡眠"}},
}

// Extract maps free text to one of the fixed topic labels, or General
// when nothing matches.
func Extract(text string) string {
	for _, e := range vocabulary {
		for _, word := range e.keywords {
			if strings.Contains(text, word) {
				return e.label
			}
		}
	}
	return General
}
