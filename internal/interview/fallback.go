package interview

import "github.com/ryuujih/voice-diary-hackathon/internal/analysis/emotion"

// Canned response ladders used when the generation model is unavailable
// or errors. One ladder per emotion, four entries for turns 1-4; from the
// fifth turn on the final wrap-up entry repeats.
var fallbackLadders = map[emotion.Type][]string{
	emotion.Positive: {
		"いいですね！それはどんな出来事だったんですか？",
		"楽しそうですね。その時の様子をもう少し聞かせてください。",
		"素敵な一日ですね。他にも何かありましたか？",
		"たくさん話してくれてありがとうございます。そろそろ今日の日記にまとめましょうか？",
	},
	emotion.Negative: {
		"そうだったんですね。何があったのか、よければ聞かせてください。",
		"大変でしたね。その時の状況をもう少し教えてもらえますか？",
		"話してくれてありがとうございます。他に気になっていることはありますか？",
		"今日もおつかれさまでした。ここまでの話を日記にまとめましょうか？",
	},
	emotion.Neutral: {
		"なるほど。今日はどんなことがありましたか？",
		"そうなんですね。もう少し詳しく聞かせてください。",
		"ありがとうございます。他に話しておきたいことはありますか？",
		"いろいろ聞かせてくれてありがとうございます。今日の日記にまとめましょうか？",
	},
}

// FallbackReply picks the canned response for a turn and emotion.
// The index saturates at the ladder's last entry.
func FallbackReply(turn int, emotionType emotion.Type) string {
	ladder, ok := fallbackLadders[emotionType]
	if !ok {
		ladder = fallbackLadders[emotion.Neutral]
	}

	idx := turn - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(ladder)-1 {
		idx = len(ladder) - 1
	}
	return ladder[idx]
}

// Greeting is the fixed opener sent when a session starts.
func Greeting() string {
	return "こんにちは！今日の日記をつくりましょう。まずは、今日あったことをひとこと聞かせてください。"
}
