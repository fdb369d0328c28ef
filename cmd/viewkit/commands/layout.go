package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/viewkit/scene"
)

// watchDebounce collapses the burst of events editors emit on save.
const watchDebounce = 100 * time.Millisecond

type layoutOptions struct {
	plain bool
	watch bool
}

func newLayoutCmd(v *viper.Viper) *cobra.Command {
	var opts layoutOptions
	cmd := &cobra.Command{
		Use:   "layout FILE...",
		Short: "Build scene files and print the laid-out view trees",
		Long: `Build each scene file in its own engine, run layout and print the
resulting tree with every view's bounds. Scene files are built concurrently
and printed in argument order.

With --watch the files are rebuilt whenever they change.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd, v, args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print indented text instead of a styled tree")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "rebuild when a scene file changes")
	return cmd
}

func runLayout(cmd *cobra.Command, v *viper.Viper, files []string, opts layoutOptions) error {
	sess, err := newSession(cmd, v)
	if err != nil {
		return err
	}
	defer sess.close()

	out := cmd.OutOrStdout()
	err = printScenes(out, sess, files, opts)
	if !opts.watch {
		return err
	}
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render(err.Error()))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchScenes(ctx, files, func(changed []string) {
		if err := printScenes(out, sess, changed, opts); err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
		}
	})
}

type builtScene struct {
	file  string
	scene *scene.Scene
}

// buildScenes loads and builds every file concurrently, one engine per file.
func buildScenes(ctx context.Context, sess *session, files []string) ([]builtScene, error) {
	built := make([]builtScene, len(files))
	g, _ := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			f, err := scene.Load(file)
			if err != nil {
				return err
			}
			e, err := sess.engine()
			if err != nil {
				return err
			}
			s, err := scene.Build(e, f)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			sess.logger.Debug("scene built", "file", file, "views", len(e.Views()))
			built[i] = builtScene{file: file, scene: s}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return built, nil
}

func printScenes(w io.Writer, sess *session, files []string, opts layoutOptions) error {
	built, err := buildScenes(context.Background(), sess, files)
	if err != nil {
		return err
	}
	for i, b := range built {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if opts.plain {
			fmt.Fprintf(w, "%s\n%s", b.file, b.scene.Root.Describe())
			continue
		}
		fmt.Fprintln(w, fileStyle.Render(b.file))
		fmt.Fprintln(w, renderTree(b.scene))
	}
	return nil
}

// watchScenes calls fn with the files that changed, debounced, until ctx is
// done. Directories are watched rather than files so editors that save by
// rename keep triggering.
func watchScenes(ctx context.Context, files []string, fn func(changed []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	wanted := make(map[string]string, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		wanted[abs] = f
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	debounce := time.NewTimer(0)
	<-debounce.C
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if f, ok := wanted[abs]; ok {
				pending[f] = true
				debounce.Reset(watchDebounce)
			}

		case <-debounce.C:
			changed := make([]string, 0, len(pending))
			for _, f := range files {
				if pending[f] {
					changed = append(changed, f)
				}
			}
			clear(pending)
			if len(changed) > 0 {
				fn(changed)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				return fmt.Errorf("watch: %w", err)
			}
		}
	}
}
