package domain

import (
	"context"
	"sync"
)

// runBatches 把 N 条路径切成批次分派给有限并发的工作协程
// 每批持有独立播种的随机源（种子由批次序号派生），统计量按批次序
// 顺序合并，结果与协程调度完全无关。上下文取消时丢弃在途批次，
// 不暴露有偏的部分估计。
func runBatches(ctx context.Context, cfg SimulationConfig, run func(batch, count int) biWelford) (biWelford, error) {
	batches := (cfg.Paths + cfg.BatchSize - 1) / cfg.BatchSize
	results := make([]biWelford, batches)

	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Workers)

	for b := 0; b < batches; b++ {
		if err := ctx.Err(); err != nil {
			break
		}
		count := cfg.BatchSize
		if remaining := cfg.Paths - b*cfg.BatchSize; remaining < count {
			count = remaining
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(batch, count int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[batch] = run(batch, count)
		}(b, count)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return biWelford{}, err
	}

	var acc biWelford
	for _, r := range results {
		acc.Merge(r)
	}
	return acc, nil
}
