// Package logging はコンソールへのログ出力を提供する
//
// ログは "[INFO] ..." / "[ERROR] ..." という接頭辞付きの自由記述の行で、
// 構造化はしない。出力先は呼び出し側が Logger として受け取り、
// テストでは任意の io.Writer に差し替えられる。
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger はサーバーが使うログ出力のインターフェース
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Console は標準出力/標準エラーに行単位でログを書く Logger
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	info   *color.Color
	err    *color.Color
}

// NewConsole は INFO を標準出力、ERROR を標準エラーに書く Console を作成する
func NewConsole() *Console {
	return New(os.Stdout, os.Stderr)
}

// New は指定した出力先に書く Console を作成する
// 出力先が端末の場合のみ接頭辞に色を付ける
func New(out, errOut io.Writer) *Console {
	return &Console{
		out:    out,
		errOut: errOut,
		info:   newPrefixColor(out, color.FgCyan),
		err:    newPrefixColor(errOut, color.FgRed),
	}
}

// Infof は INFO レベルの行を出力する
func (c *Console) Infof(format string, args ...interface{}) {
	c.write(c.out, c.info, "[INFO]", fmt.Sprintf(format, args...))
}

// Errorf は ERROR レベルの行を出力する
func (c *Console) Errorf(format string, args ...interface{}) {
	c.write(c.errOut, c.err, "[ERROR]", fmt.Sprintf(format, args...))
}

// write は1行を1回の Write で書き込む
func (c *Console) write(w io.Writer, prefixColor *color.Color, prefix, message string) {
	line := prefixColor.Sprint(prefix) + " " + strings.TrimRight(message, "\n") + "\n"

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(w, line)
}

// newPrefixColor は出力先に応じて色の有効/無効を決めた color.Color を返す
func newPrefixColor(w io.Writer, attr color.Attribute) *color.Color {
	c := color.New(attr, color.Bold)
	if isTerminal(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type nop struct{}

func (nop) Infof(string, ...interface{})  {}
func (nop) Errorf(string, ...interface{}) {}

// Nop は何も出力しない Logger を返す
func Nop() Logger {
	return nop{}
}
