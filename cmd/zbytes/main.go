// Command zbytes drives the byte-buffer engine end to end over real
// files: hashing, content comparison, and an elastic-growth
// microbenchmark. The core engine never touches the filesystem itself
// (spec.md Non-goals); this is the one place the module does, for
// demonstration only.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arrowbyte/zbytes/internal/store"
	"github.com/arrowbyte/zbytes/internal/zbytes"
	"github.com/arrowbyte/zbytes/internal/zconfig"
	"github.com/arrowbyte/zbytes/internal/zequal"
	"github.com/arrowbyte/zbytes/internal/zhash"
)

func main() {
	logger := log.NewLogfmtLogger(os.Stderr)
	store.SetTracingLogger(logger)

	root := &cobra.Command{
		Use:   "zbytes",
		Short: "Drive the zbytes byte-buffer engine against real files",
	}

	root.AddCommand(newHashCmd(logger))
	root.AddCommand(newEqualCmd(logger))
	root.AddCommand(newBenchGrowthCmd(logger))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newHashCmd(logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <file>",
		Short: "Print the 64-bit and 32-bit content hash of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			st, err := store.Wrap(b, "cli")
			if err != nil {
				return err
			}
			defer st.Release("cli")

			h64, err := zhash.Hash64(st)
			if err != nil {
				return err
			}
			h32, err := zhash.Hash32(st)
			if err != nil {
				return err
			}
			fmt.Printf("hash64=%016x hash32=%08x bytes=%d\n", h64, uint32(h32), len(b))
			return nil
		},
	}
}

func newEqualCmd(logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "equal <a> <b>",
		Short: "Report whether two files have equal content (zero-extension aware)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ba, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			bb, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			sa, err := store.Wrap(ba, "cli")
			if err != nil {
				return err
			}
			defer sa.Release("cli")
			sb, err := store.Wrap(bb, "cli")
			if err != nil {
				return err
			}
			defer sb.Release("cli")

			eq := zequal.Equal(sa, sb, zconfig.LoadFromEnv())
			fmt.Println(eq)
			if !eq {
				return fmt.Errorf("files differ")
			}
			return nil
		},
	}
}

func newBenchGrowthCmd(logger log.Logger) *cobra.Command {
	var initialSize, capacityLimit, totalBytes int
	var trace bool
	cmd := &cobra.Command{
		Use:   "bench-growth",
		Short: "Exercise the elastic growth protocol over a native cursor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := zconfig.LoadFromEnv()
			cfg.ResourceTracing = cfg.ResourceTracing || trace
			c, err := zbytes.ElasticBufferWithConfig(initialSize, capacityLimit, cfg)
			if err != nil {
				return err
			}
			c.SetLogger(logger)
			defer c.Release()

			payload := make([]byte, totalBytes)
			rand.New(rand.NewSource(time.Now().UnixNano())).Read(payload)

			start := time.Now()
			if err := c.WriteBytes(payload); err != nil {
				return err
			}
			elapsed := time.Since(start)

			fields := []any{"msg", "elastic growth benchmark complete",
				"initialSize", initialSize, "totalBytes", totalBytes,
				"finalStoreSize", c.Store().Size(), "elapsed", elapsed}
			if id, ok := c.TraceID(); ok {
				fields = append(fields, "traceID", id)
			}
			level.Info(logger).Log(fields...)
			return nil
		},
	}
	cmd.Flags().IntVar(&initialSize, "initial-size", 1024, "initial native store size")
	cmd.Flags().IntVar(&capacityLimit, "capacity", 1<<26, "growth ceiling")
	cmd.Flags().IntVar(&totalBytes, "bytes", 1<<20, "total bytes to write")
	cmd.Flags().BoolVar(&trace, "trace", false, "assign the native store a trace id and arm its leak finalizer")
	return cmd
}
