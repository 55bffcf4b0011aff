/**
 * @Author: dingQingHui
 * @Description:
 * @File: workers
 * @Version: 1.0.0
 * @Date: 2025/1/2 10:16
 */

package workers

import (
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

const defaultPoolSize = 256

var (
	goCount      atomic.Int64
	panicCount   atomic.Uint64
	pool         *ants.Pool
	panicHandler atomic.Value // func(interface{})
)

func init() {
	pool, _ = ants.NewPool(defaultPoolSize)
}

// Submit 提交任务到协程池，任务内的 panic 会被捕获并交给 recoverFun 与全局 panic 处理器
func Submit(fn func(), recoverFun func(err interface{})) error {
	return pool.Submit(func() {
		goCount.Add(1)
		defer goCount.Add(-1)
		Try(fn, recoverFun)
	})
}

func Try(fn func(), reFun func(err interface{})) {
	defer func() {
		if err := recover(); err != nil {
			panicCount.Add(1)
			if reFun != nil {
				reFun(err)
			}
			if h, ok := panicHandler.Load().(func(interface{})); ok && h != nil {
				h(err)
			}
		}
	}()
	fn()
}

func SetPanicHandler(handler func(interface{})) {
	panicHandler.Store(handler)
}

// Running 正在执行的任务数
func Running() int64 {
	return goCount.Load()
}

// PanicCount 累计捕获的 panic 次数
func PanicCount() uint64 {
	return panicCount.Load()
}
