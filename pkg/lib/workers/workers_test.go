package workers

import (
	"sync"
	"testing"
)

func TestSubmit(t *testing.T) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	sum := 0
	for i := 1; i <= 10; i++ {
		i := i
		wg.Add(1)
		if err := Submit(func() {
			defer wg.Done()
			mu.Lock()
			sum += i
			mu.Unlock()
		}, nil); err != nil {
			t.Fatalf("提交任务失败: %v", err)
		}
	}
	wg.Wait()
	if sum != 55 {
		t.Errorf("期望 55, 实际 %d", sum)
	}
}

func TestSubmit_Recover(t *testing.T) {
	before := PanicCount()
	recovered := make(chan interface{}, 1)
	if err := Submit(func() {
		panic("boom")
	}, func(err interface{}) {
		recovered <- err
	}); err != nil {
		t.Fatalf("提交任务失败: %v", err)
	}
	if r := <-recovered; r != "boom" {
		t.Errorf("期望捕获 boom, 实际 %v", r)
	}
	if PanicCount() != before+1 {
		t.Errorf("panic 计数不正确: %d", PanicCount())
	}
}
