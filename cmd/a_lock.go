package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"code.cloudfoundry.org/filelock"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/state"
)

// lockRun holds an exclusive lock of the working directory so two runs never pay the same accounts
func lockRun(ctx context.Context) (unlock func() error, err error) {
	lockFilePath := state.Global.GetLockFilePath()
	lock := filelock.NewLocker(lockFilePath)

	type lockResult struct {
		file io.Closer
		err  error
	}
	resultChan := make(chan lockResult, 1)
	go func() {
		f, err := lock.Open()
		resultChan <- lockResult{f, err}
	}()

	select {
	case <-ctx.Done():
		slog.Debug("context canceled while waiting for lock")
		go func() {
			if result := <-resultChan; result.err == nil {
				result.file.Close()
			}
		}()
		return nil, errors.Join(constants.ErrRunLockFailed, ctx.Err())
	case result := <-resultChan:
		if result.err != nil {
			return nil, errors.Join(constants.ErrRunLockFailed, result.err)
		}
		slog.Debug("locked file", "file", lockFilePath)
		return func() error {
			err := result.file.Close()
			os.Remove(lockFilePath)
			return err
		}, nil
	}
}

func lockRunWithTimeout() (unlock func() error, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RUN_LOCK_TIMEOUT)
	defer cancel()
	return lockRun(ctx)
}
