package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/ardnew/pyrelens/pkg"
)

func TestViewRejectsEmptyFile(t *testing.T) {
	t.Parallel()

	err := (&View{File: ""}).Run(context.Background())
	if !errors.Is(err, pkg.ErrNoInput) {
		t.Errorf("Run() = %v, want pkg.ErrNoInput", err)
	}
}

func TestAttachRejectsInvalidPid(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1} {
		err := (&Attach{Pid: pid}).Run(context.Background())
		if !errors.Is(err, pkg.ErrNoInput) {
			t.Errorf("Run() with pid %d = %v, want pkg.ErrNoInput", pid, err)
		}
	}
}
