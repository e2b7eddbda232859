// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/cronkit/cmd/cronkit/cli"
	"github.com/bureau-foundation/cronkit/lib/version"
)

type versionParams struct {
	Format string `flag:"format,o" desc:"output format: text, json, or cbor" default:"text"`
}

func versionCommand(env *environment) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			format, err := cli.ParseFormat(params.Format)
			if err != nil {
				return err
			}
			return cli.Emit(env.stdout, format, version.Current(), func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "cronkit %s\n", version.Full())
				return err
			})
		},
	}
}
