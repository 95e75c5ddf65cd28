package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rag-nar1/bloomcheck/filter"
	"github.com/rag-nar1/bloomcheck/filter/bloom"
	"github.com/rag-nar1/bloomcheck/internal/logger"
)

const charset = "abcdefghijklmnopqrstuvwxyz" + "ABCDEFGHIJKLMNOPQRSTUVWXYZ" + "0123456789"

type result struct {
	hash      string
	m, k      uint64
	fp, fn    int
	queries   int
	insertDur time.Duration
	queryDur  time.Duration
	estimated float64
}

func randomString(r *rand.Rand, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[r.Intn(len(charset))]
	}
	return string(b)
}

// dataset returns n distinct members and n distinct strangers.
func dataset(r *rand.Rand, n int) (members, strangers []string) {
	seen := make(map[string]bool, 2*n)
	next := func() string {
		for {
			s := randomString(r, 8+r.Intn(56))
			if !seen[s] {
				seen[s] = true
				return s
			}
		}
	}
	members = make([]string, n)
	for i := range members {
		members[i] = next()
	}
	strangers = make([]string, n)
	for i := range strangers {
		strangers[i] = next()
	}
	return members, strangers
}

func measure(name string, fn filter.Hash, members, strangers []string, fpRate float64) (result, error) {
	bf, err := bloom.NewWithEstimates(uint64(len(members)), fpRate, bloom.WithHash(fn))
	if err != nil {
		return result{}, err
	}
	res := result{hash: name, m: bf.M, k: bf.K, queries: len(strangers)}

	start := time.Now()
	for _, s := range members {
		bf.InsertString(s)
	}
	res.insertDur = time.Since(start)

	for _, s := range members {
		if bf.Query(s) == bloom.DefinitelyAbsent {
			res.fn++
		}
	}

	start = time.Now()
	for _, s := range strangers {
		if bf.Query(s) == bloom.PossiblyPresent {
			res.fp++
		}
	}
	res.queryDur = time.Since(start)
	res.estimated = bf.EstimatedFalsePositiveRate()
	return res, nil
}

func printResults(w io.Writer, fpRate float64, n int, results []result) {
	fmt.Fprintf(w, "n=%d p=%g\n", n, fpRate)
	fmt.Fprintln(w, "| hash     | m          | k  | observed fpr | estimated fpr | false neg | insert ns/op | query ns/op |")
	fmt.Fprintln(w, "|----------|------------|----|--------------|---------------|-----------|--------------|-------------|")
	for _, r := range results {
		fmt.Fprintf(w, "| %-8s | %-10d | %-2d | %-12.6f | %-13.6f | %-9d | %-12d | %-11d |\n",
			r.hash, r.m, r.k,
			float64(r.fp)/float64(r.queries), r.estimated, r.fn,
			r.insertDur.Nanoseconds()/int64(n), r.queryDur.Nanoseconds()/int64(r.queries),
		)
	}
}

func main() {
	n := flag.Int("n", 1_000_000, "keys to insert and to query")
	fpRate := flag.Float64("p", 0.01, "target false-positive probability")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for the generated keys")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if *n < 1 {
		log.Fatal("n must be positive", zap.Int("n", *n))
	}

	log.Info("generating keys", zap.Int("n", *n), zap.Int64("seed", *seed))
	members, strangers := dataset(rand.New(rand.NewSource(*seed)), *n)

	results := make([]result, 0, len(filter.HashNames()))
	for _, name := range filter.HashNames() {
		fn, _ := filter.HashByName(name)
		res, err := measure(name, fn, members, strangers, *fpRate)
		if err != nil {
			log.Fatal("failed to build filter", zap.String("hash", name), zap.Error(err))
		}
		results = append(results, res)
	}

	printResults(os.Stdout, *fpRate, *n, results)
}
