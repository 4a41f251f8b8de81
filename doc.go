/*
Package statusbar drives a status bar for i3bar and swaybar.

A Bar owns the blocks spawned from the configuration and runs the event loop
that turns their widgets into protocol updates. The loop is the only writer of
update elements; blocks publish through the API they are handed and do their
blocking work on a bounded pool.

# Usage

	cfg, err := loader.Load(ctx, "config.toml")
	if err != nil {
		return err
	}

	defs := cfg.TakeBlocks()
	bar := statusbar.New(cfg.Settings,
		statusbar.WithChannel(protocol.NewChannel(os.Stdout)),
		statusbar.WithPool(async.NewPool(2)),
	)
	for _, def := range defs {
		if err := bar.SpawnBlock(ctx, def); err != nil {
			return err
		}
	}

	// RunEventLoop only returns on a fatal error.
	return bar.RunEventLoop(ctx)

There is no per-block isolation: the first block failure ends the loop and is
handed to crash recovery (see package recovery).
*/
package statusbar
