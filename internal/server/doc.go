// Package server は、単一の画像ファイルを配信するHTTPサーバーを管理します。
//
// 責務:
//   - HTTPサーバーの起動と停止
//   - GET / で設定されたファイルをそのまま返す
//   - ファイルがなければ 404 "File not found"、送信に失敗すれば 500 "Internal Server Error"
//   - リクエストごとのログ出力
//
// 仕様:
//   - ルーティングは gin を使用
//   - 存在確認と送信は別々の処理で、その間にファイルが消えた場合は送信失敗 (500) となる
//   - 毎回ディスクから読み直し、キャッシュはしない
//   - グレースフルシャットダウンは行わない
package server
