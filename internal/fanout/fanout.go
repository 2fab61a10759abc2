// Package fanout はgoroutineの並行実行数を制限しつつ、
// 各goroutineで発生したpanicを Wait の呼び出し元へ伝播するグループを提供する。
package fanout

import (
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"
)

// PanicError はgoroutine内で回復したpanicの値とスタックトレースを保持する。
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in fan-out goroutine: %v\n%s", e.Value, e.Stack)
}

// Group は errgroup.Group をラップする。
// ゼロ値のまま使用できる。Wait を呼んだ後は再利用しないこと。
type Group struct {
	g         errgroup.Group
	once      sync.Once
	recovered *PanicError
}

// SetLimit は同時に実行するgoroutine数の上限を設定する。
func (g *Group) SetLimit(n int) {
	g.g.SetLimit(n)
}

// Go はfを新しいgoroutineで実行する。上限に達している場合は空きが出るまでブロックする。
func (g *Group) Go(f func()) {
	g.g.Go(func() error {
		defer func() {
			if rec := recover(); rec != nil {
				pe := &PanicError{Value: rec, Stack: debug.Stack()}
				g.once.Do(func() { g.recovered = pe })
			}
		}()
		f()
		return nil
	})
}

// Wait はすべてのgoroutineの終了を待つ。
// いずれかがpanicした場合は、最初のpanicを *PanicError として呼び出し元で再発生させる。
func (g *Group) Wait() {
	_ = g.g.Wait()
	if g.recovered != nil {
		panic(g.recovered)
	}
}
