package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestConfigLoad はデフォルト設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_HOST", "")
	t.Setenv("ASSET_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("デフォルトホストが不正です: got %s, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("デフォルトポートが不正です: got %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if !filepath.IsAbs(cfg.Asset.BaseDir) {
		t.Errorf("ベースディレクトリが絶対パスではありません: %s", cfg.Asset.BaseDir)
	}
	if filepath.Base(cfg.FilePath()) != FileName {
		t.Errorf("ファイルパスが不正です: %s", cfg.FilePath())
	}
}

// TestPortFromEnvironment はPORT環境変数の解釈をテストする
func TestPortFromEnvironment(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected int
	}{
		{"未設定", "", 3000},
		{"有効な整数", "8081", 8081},
		{"整数でない", "abc", 3000},
		{"末尾にゴミ", "3001abc", 3000},
		{"小数", "80.5", 3000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PORT", tc.value)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("設定の読み込みに失敗しました: %v", err)
			}
			if cfg.Server.Port != tc.expected {
				t.Errorf("ポートが一致しません: got %d, want %d", cfg.Server.Port, tc.expected)
			}
		})
	}
}

// TestPortOutOfRange は範囲外のポートで読み込みが失敗することをテストする
func TestPortOutOfRange(t *testing.T) {
	for _, value := range []string{"0", "-1", "65536", "99999"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("PORT", value)

			if _, err := Load(); err == nil {
				t.Errorf("PORT=%s でエラーが期待されましたが、エラーが発生しませんでした", value)
			}
		})
	}
}

// TestEnvironmentVariables はホストとベースディレクトリの環境変数をテストする
func TestEnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("PORT", "9999")
	t.Setenv("ASSET_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.ServerAddress() != "127.0.0.1:9999" {
		t.Errorf("サーバーアドレスが一致しません: got %s, want 127.0.0.1:9999", cfg.ServerAddress())
	}
	expected := filepath.Join(dir, FileName)
	if cfg.FilePath() != expected {
		t.Errorf("ファイルパスが一致しません: got %s, want %s", cfg.FilePath(), expected)
	}
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name      string
		config    *Config
		expectErr bool
	}{
		{
			name: "正常な設定",
			config: &Config{
				Server: ServerConfig{Host: "0.0.0.0", Port: 3000},
				Asset:  AssetConfig{BaseDir: "/srv", FileName: FileName},
			},
			expectErr: false,
		},
		{
			name: "無効なポート番号",
			config: &Config{
				Server: ServerConfig{Host: "0.0.0.0", Port: 99999},
				Asset:  AssetConfig{BaseDir: "/srv", FileName: FileName},
			},
			expectErr: true,
		},
		{
			name: "ファイル名なし",
			config: &Config{
				Server: ServerConfig{Host: "0.0.0.0", Port: 3000},
				Asset:  AssetConfig{BaseDir: "/srv"},
			},
			expectErr: true,
		},
		{
			name: "相対パスのベースディレクトリ",
			config: &Config{
				Server: ServerConfig{Host: "0.0.0.0", Port: 3000},
				Asset:  AssetConfig{BaseDir: "srv", FileName: FileName},
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.expectErr && err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
			if !tc.expectErr && err != nil {
				t.Errorf("予期しないエラーが発生しました: %v", err)
			}
		})
	}
}

// TestLoadDotEnv は .env ファイルの読み込みをテストする
func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("LOGOSERVER_TEST_A=from-file\nLOGOSERVER_TEST_B=from-file\n"), 0o600); err != nil {
		t.Fatalf("テスト用 .env の作成に失敗しました: %v", err)
	}

	// 後片付けを登録してから未設定状態にする
	t.Setenv("LOGOSERVER_TEST_A", "")
	_ = os.Unsetenv("LOGOSERVER_TEST_A")
	t.Setenv("LOGOSERVER_TEST_B", "from-env")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf(".env の読み込みに失敗しました: %v", err)
	}

	if got := os.Getenv("LOGOSERVER_TEST_A"); got != "from-file" {
		t.Errorf(".env の値が反映されていません: got %q, want from-file", got)
	}
	if got := os.Getenv("LOGOSERVER_TEST_B"); got != "from-env" {
		t.Errorf("既存の環境変数が上書きされました: got %q, want from-env", got)
	}
}

// TestLoadDotEnvMissing は .env がない場合にエラーにならないことをテストする
func TestLoadDotEnvMissing(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("予期しないエラーが発生しました: %v", err)
	}
}
