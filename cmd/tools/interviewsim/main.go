// interviewsim は面談フローを端末から一周試すための手動テストツール。
// デモモードなら資格情報なしで動き、-live を付けると実際の生成モデルを呼ぶ。
//
//	go run ./cmd/tools/interviewsim
//	go run ./cmd/tools/interviewsim -live -script "今日は忙しかった|昼は同僚とラーメン|少し疲れた"
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ryuujih/voice-diary-hackathon/internal/config"
	aiservice "github.com/ryuujih/voice-diary-hackathon/internal/service/ai"
	diaryservice "github.com/ryuujih/voice-diary-hackathon/internal/service/diary"
	"github.com/ryuujih/voice-diary-hackathon/internal/service/session"
)

var defaultScript = []string{
	"今日は朝から仕事が忙しかったです",
	"昼休みに同僚とラーメンを食べに行きました",
	"午後は会議続きで少し疲れました",
	"でも帰り道に夕焼けがきれいで気分が良くなりました",
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] .env を読み込めませんでした。システム環境変数を使います: %v", err)
	}

	script := flag.String("script", "", "ユーザー発話を | 区切りで指定 (省略時は既定のスクリプト)")
	live := flag.Bool("live", false, "実際の生成モデルを呼ぶ (要 OPENAI_API_KEY)")
	stream := flag.Bool("stream", false, "応答をストリーミングで受け取る")
	timeout := flag.Duration("timeout", 120*time.Second, "全体のタイムアウト")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置の読み込みに失敗しました: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	logger := zap.NewNop()

	var generator aiservice.Generator
	if *live {
		if !cfg.AI.Enabled() {
			log.Fatal("-live には OPENAI_API_KEY の設定が必要です")
		}
		svc, err := aiservice.NewService(ctx, cfg.AI, logger)
		if err != nil {
			log.Fatalf("生成サービスの初期化に失敗しました: %v", err)
		}
		generator = svc
	}

	store := session.NewMemoryStore(cfg.Store.SessionTTL, cfg.Store.PurgeInterval)
	diarySvc := diaryservice.NewService(store, generator, logger)

	messages := defaultScript
	if *script != "" {
		messages = nil
		for _, part := range strings.Split(*script, "|") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				messages = append(messages, trimmed)
			}
		}
	}
	if len(messages) == 0 {
		log.Fatal("-script に発話がひとつもありません")
	}

	start, err := diarySvc.Start(ctx)
	if err != nil {
		log.Fatalf("セッション開始に失敗しました: %v", err)
	}
	fmt.Printf("session: %s\n", start.SessionID)
	fmt.Printf("AI: %s\n\n", start.Greeting)

	for _, text := range messages {
		fmt.Printf("you: %s\n", text)

		var result *diaryservice.MessageResult
		if *stream {
			fmt.Print("AI: ")
			result, err = diarySvc.StreamMessage(ctx, start.SessionID, text, func(chunk string) error {
				fmt.Print(chunk)
				return nil
			})
			fmt.Println()
		} else {
			result, err = diarySvc.PostMessage(ctx, start.SessionID, text)
			if err == nil {
				fmt.Printf("AI: %s\n", result.Reply)
			}
		}
		if err != nil {
			log.Fatalf("発話の送信に失敗しました: %v", err)
		}
		fmt.Printf("    (turn=%d mode=%s canSummarize=%t)\n\n", result.TurnCount, result.Mode, result.CanSummarize)
	}

	summary, err := diarySvc.Summarize(ctx, start.SessionID)
	if err != nil {
		log.Fatalf("要約に失敗しました: %v", err)
	}
	fmt.Printf("--- diary (mode=%s, %d turns, %d min) ---\n%s\n\n", summary.Mode, summary.TurnCount, summary.DurationMinutes, summary.Diary)

	title, err := diarySvc.MakeTitle(ctx, summary.Diary)
	if err != nil {
		log.Fatalf("タイトル生成に失敗しました: %v", err)
	}
	fmt.Printf("title: %s (mode=%s)\n", title.Title, title.Mode)
}
