package main

import (
	"context"
	"os"

	"logoserver/internal/config"
	"logoserver/internal/logging"
	"logoserver/internal/server"
)

func main() {
	logger := logging.NewConsole()

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("設定の読み込みに失敗しました: %v", err)
		os.Exit(1)
	}

	// サーバーを作成
	srv := server.New(cfg, logger)

	// サーバーを起動
	if err := srv.Start(context.Background()); err != nil {
		logger.Errorf("サーバーの起動に失敗しました: %v", err)
		os.Exit(1)
	}
}
