/**
 * @Author: dingQingHui
 * @Description:
 * @File: timingwheel
 * @Version: 1.0.0
 * @Date: 2024/11/28 14:06
 */

package asynctime

import (
	"time"

	"github.com/RussellLuo/timingwheel"
)

var tw = timingwheel.NewTimingWheel(1*time.Millisecond, 3600)

func init() {
	tw.Start()
}

// Timer 可停止的定时器
type Timer interface {
	Stop() bool
}

func AfterFunc(d time.Duration, f func()) Timer {
	return tw.AfterFunc(d, f)
}

// every 固定间隔的调度器
type every struct {
	interval time.Duration
}

func (e every) Next(prev time.Time) time.Time {
	return prev.Add(e.interval)
}

// Every 每隔 interval 执行一次 f，直到返回的 Timer 被 Stop
func Every(interval time.Duration, f func()) Timer {
	return tw.ScheduleFunc(every{interval: interval}, f)
}
