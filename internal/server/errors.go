package server

import "github.com/pkg/errors"

var (
	// ErrNotFound は存在確認でファイルが見つからなかったことを表す
	ErrNotFound = errors.New("file not found")
	// ErrSendFailure はファイルの送信に失敗したことを表す
	ErrSendFailure = errors.New("send failure")
)
