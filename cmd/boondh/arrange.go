package main

import (
	"errors"
	"fmt"

	"github.com/utkarsh5026/boondh/arrange"
)

func runArrange(e *env, args []string) error {
	fs, cfgPath, logLevel := newFlagSet("arrange", e)
	dir := fs.StringP("dir", "D", "", "directory to arrange (required)")
	clean := fs.Bool("clean", false, "remove empty sub directories afterwards")
	suffix := fs.String("suffix", arrange.DefaultSuffix, "suffix of the type sub directories")
	if err := e.setup(fs, args, cfgPath, logLevel); err != nil {
		return err
	}
	defer e.logger.Sync()

	if *dir == "" {
		return errors.New("--dir is required")
	}

	opts := []arrange.Option{arrange.WithLogger(e.logger), arrange.WithSuffix(*suffix)}
	if !e.cfg.NoProgress {
		opts = append(opts, arrange.WithProgress(e.stderr))
	}
	o := arrange.New(opts...)

	moved, err := o.MoveFilesToTypeSubDirs(*dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "moved %s files in %s\n", bold.Sprint(moved), *dir)

	if *clean {
		removed, err := o.RemoveEmptySubDirs(*dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "removed %s empty directories\n", bold.Sprint(len(removed)))
	}
	return nil
}
