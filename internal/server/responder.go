package server

import (
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"logoserver/internal/logging"
)

const (
	notFoundBody      = "File not found"
	internalErrorBody = "Internal Server Error"
	fallbackMIME      = "application/octet-stream"
)

// FileSystem は配信ファイルへのアクセスを抽象化する
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (fs.File, error)
}

type osFileSystem struct{}

func (osFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (osFileSystem) Open(name string) (fs.File, error)     { return os.Open(name) }

// OSFileSystem はOSのファイルシステムを使う FileSystem を返す
func OSFileSystem() FileSystem {
	return osFileSystem{}
}

// Responder は1つのファイルをレスポンスとして返すハンドラ
type Responder struct {
	path   string
	files  FileSystem
	logger logging.Logger
}

// NewResponder は新しい Responder を作成する
func NewResponder(path string, files FileSystem, logger logging.Logger) *Responder {
	return &Responder{
		path:   path,
		files:  files,
		logger: logger,
	}
}

// Handle はファイルを存在確認してから送信する
func (r *Responder) Handle(c *gin.Context) {
	r.logger.Infof("Attempting to serve file from: %s", r.path)

	// 存在確認
	if err := r.check(); err != nil {
		r.logger.Errorf("File not found")
		_ = c.Error(err)
		c.String(http.StatusNotFound, notFoundBody)
		return
	}

	// 送信。確認後に消えたファイルもここで送信失敗になる
	if err := r.send(c); err != nil {
		r.logger.Errorf("Error sending file: %v", err)
		_ = c.Error(err)
		if c.Writer.Written() {
			// ステータスは送信済みなので打ち切るしかない
			c.Abort()
			return
		}
		header := c.Writer.Header()
		header.Del("Content-Type")
		header.Del("Content-Length")
		c.String(http.StatusInternalServerError, internalErrorBody)
	}
}

// check はファイルの存在を同期的に確認する
func (r *Responder) check() error {
	if _, err := r.files.Stat(r.path); err != nil {
		return errors.Wrapf(ErrNotFound, "stat %s: %v", r.path, err)
	}
	return nil
}

// send はファイルを開いてレスポンスボディに書き込む
func (r *Responder) send(c *gin.Context) error {
	f, err := r.files.Open(r.path)
	if err != nil {
		return errors.Wrapf(ErrSendFailure, "open %s: %v", r.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrapf(ErrSendFailure, "stat %s: %v", r.path, err)
	}
	if info.IsDir() {
		return errors.Wrapf(ErrSendFailure, "%s is a directory", r.path)
	}

	contentType, err := detectContentType(r.path, f)
	if err != nil {
		return errors.Wrapf(ErrSendFailure, "detect content type of %s: %v", r.path, err)
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Length", strconv.FormatInt(info.Size(), 10))
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, f); err != nil {
		return errors.Wrapf(ErrSendFailure, "copy %s: %v", r.path, err)
	}
	c.Writer.WriteHeaderNow()

	return nil
}

// detectContentType は拡張子からContent-Typeを決める
// 拡張子で決まらない場合は先頭バイトから判定し、読み位置を先頭に戻す
func detectContentType(name string, f fs.File) (string, error) {
	if contentType := mime.TypeByExtension(filepath.Ext(name)); contentType != "" {
		return contentType, nil
	}

	seeker, ok := f.(io.Seeker)
	if !ok {
		return fallbackMIME, nil
	}

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return detected.String(), nil
}
