package main

import (
    "context"
    "fmt"
    "math"
    "os"
    "sort"
    "strconv"
    "time"

    "github.com/d60-Lab/posting/config"
    "github.com/d60-Lab/posting/internal/repository"
    "github.com/d60-Lab/posting/internal/service"
    "github.com/d60-Lab/posting/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func pct(vs []time.Duration, p float64) time.Duration {
    if len(vs) == 0 { return 0 }
    xs := append([]time.Duration(nil), vs...)
    sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
    k := int(math.Ceil(p*float64(len(xs)))) - 1
    if k < 0 { k = 0 }
    if k >= len(xs) { k = len(xs)-1 }
    return xs[k]
}

func envInt(name string, def int) int {
    if s := os.Getenv(name); s != "" {
        if v, e := strconv.Atoi(s); e == nil && v > 0 { return v }
    }
    return def
}

func main() {
    cfg := must(config.Load())
    db := must(database.InitDB(cfg))
    if err := repository.AutoMigrate(db); err != nil { panic(err) }

    store := repository.NewStore(db)
    svc := service.NewPostingService(store, service.NewValidator(nil))
    ctx := context.Background()

    // params
    AUTHORS := envInt("AUTHORS", 200) // reader 关注的作者数
    POSTS := envInt("POSTS", 20)      // 每个作者的帖子数
    PAGE := envInt("PAGE", 50)        // 分页大小
    REPEAT := envInt("REPEAT", 100)

    // seed: 每次运行使用新的用户名前缀，避免与旧数据混在一起
    run := strconv.FormatInt(time.Now().UnixNano(), 36)
    reader := "reader_" + run
    if err := svc.NewPost(ctx, reader, "hello"); err != nil { panic(err) }

    pubDurations := make([]time.Duration, 0, AUTHORS*POSTS)
    for i := 0; i < AUTHORS; i++ {
        author := fmt.Sprintf("author_%s_%d", run, i)
        for j := 0; j < POSTS; j++ {
            st := time.Now()
            if err := svc.NewPost(ctx, author, fmt.Sprintf("post %d", j)); err != nil { panic(err) }
            pubDurations = append(pubDurations, time.Since(st))
        }
        if err := svc.Follow(ctx, reader, author); err != nil { panic(err) }
    }

    complete := make([]time.Duration, 0, REPEAT)
    paged := make([]time.Duration, 0, REPEAT)
    rows := 0
    for i := 0; i < REPEAT; i++ {
        st := time.Now()
        all, err := svc.GetCompleteTimeline(ctx, reader)
        if err != nil { panic(err) }
        complete = append(complete, time.Since(st))
        rows = len(all)

        st = time.Now()
        if _, err := svc.GetTimeline(ctx, reader, i%((rows+PAGE-1)/PAGE), PAGE); err != nil { panic(err) }
        paged = append(paged, time.Since(st))
    }

    avg := func(vs []time.Duration) time.Duration {
        if len(vs) == 0 { return 0 }
        var sum time.Duration
        for _, d := range vs { sum += d }
        return sum / time.Duration(len(vs))
    }

    fmt.Printf("AUTHORS=%d POSTS=%d PAGE=%d REPEAT=%d driver=%s\n", AUTHORS, POSTS, PAGE, REPEAT, cfg.Database.Driver)
    fmt.Printf("NewPost tx latency: avg=%v p95=%v p99=%v\n", avg(pubDurations), pct(pubDurations, 0.95), pct(pubDurations, 0.99))
    fmt.Printf("Complete timeline (rows=%d): avg=%v p95=%v p99=%v\n", rows, avg(complete), pct(complete, 0.95), pct(complete, 0.99))
    fmt.Printf("Paged timeline (size=%d): avg=%v p95=%v p99=%v\n", PAGE, avg(paged), pct(paged, 0.95), pct(paged, 0.99))
}
