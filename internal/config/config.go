package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// FileName は配信する画像ファイル名
const FileName = "logoswayatt.png"

// DefaultPort はPORTが未設定または不正な場合のポート番号
const DefaultPort = 3000

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig
	Asset  AssetConfig
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string // リッスンするホスト
	Port int    // リッスンするポート番号
}

// AssetConfig は配信ファイルの設定
type AssetConfig struct {
	BaseDir  string // ファイルを置くディレクトリ (絶対パス)
	FileName string
}

// Load は環境変数から設定を読み込む
// カレントディレクトリに .env があれば先に読み込むが、既存の環境変数は上書きしない
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	baseDir, err := resolveBaseDir(os.Getenv("ASSET_DIR"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsIntOrDefault("PORT", DefaultPort),
		},
		Asset: AssetConfig{
			BaseDir:  baseDir,
			FileName: FileName,
		},
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}
	if c.Asset.FileName == "" {
		return errors.New("ファイル名が設定されていません")
	}
	if !filepath.IsAbs(c.Asset.BaseDir) {
		return fmt.Errorf("ベースディレクトリが絶対パスではありません: %q", c.Asset.BaseDir)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// FilePath は配信ファイルの絶対パスを返す
func (c *Config) FilePath() string {
	return filepath.Join(c.Asset.BaseDir, c.Asset.FileName)
}

// resolveBaseDir はファイルの基準ディレクトリを決める
// 指定がなければ実行ファイルのあるディレクトリを使う
func resolveBaseDir(override string) (string, error) {
	if override != "" {
		dir, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("ASSET_DIRの解決に失敗: %w", err)
		}
		return dir, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("実行ファイルのパス取得に失敗: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// loadDotEnv は .env ファイルを読み込む。ファイルがなければ何もしない
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%s の読み込みに失敗: %w", path, err)
	}
	return nil
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていないか整数でない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
