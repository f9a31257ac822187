package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/utkarsh5026/boondh/frame"
)

func runDummy(e *env, args []string) error {
	fs, cfgPath, logLevel := newFlagSet("dummy", e)
	seed := fs.Uint64("seed", 0, "random seed (0 picks one from the clock)")
	column := fs.String("column", "category", "column to count values in")
	minFreq := fs.Int("min-freq", 0, "keep rows whose column value occurs at least this often")
	if err := e.setup(fs, args, cfgPath, logLevel); err != nil {
		return err
	}
	defer e.logger.Sync()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	f := frame.Dummy(rand.New(rand.NewPCG(*seed, *seed)))

	if *minFreq > 0 {
		filtered, err := frame.FilterValuesAboveFreq(f, *column, *minFreq)
		if err != nil {
			return err
		}
		f = filtered
	}

	if err := f.Render(e.stdout); err != nil {
		return err
	}

	if v, ok, err := f.MostFrequent(*column); err != nil {
		return err
	} else if ok {
		fmt.Fprintf(e.stdout, "rows=%d most frequent %s=%v\n", f.Len(), *column, v)
	} else {
		fmt.Fprintf(e.stdout, "rows=%d\n", f.Len())
	}
	return nil
}
