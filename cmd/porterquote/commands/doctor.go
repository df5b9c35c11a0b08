package commands

import (
	"fmt"

	"porterquote/cmd/porterquote/globals"
	"porterquote/cmd/porterquote/utils"
	"porterquote/internal/browser"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/spf13/cobra"
)

// chrome tends to crash below this much free memory
const minAvailableMemoryMb = 512

type check struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Checks that this machine can fetch quotes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())
		opts := g.Client.Options()

		var checks []check

		switch {
		case opts.RemoteURL != "":
			checks = append(checks, check{Name: "browser", OK: true, Detail: "remote " + opts.RemoteURL})
		case opts.ExecPath != "":
			checks = append(checks, check{Name: "browser", OK: true, Detail: opts.ExecPath})
		default:
			path, found := browser.FindExecPath()
			detail := path
			if !found {
				detail = "no chrome or chromium binary on PATH, set chrome_path or remote_url"
			}
			checks = append(checks, check{Name: "browser", OK: found, Detail: detail})
		}

		err := g.Client.Ping(cmd.Context())
		if err != nil {
			checks = append(checks, check{Name: "reachability", OK: false, Detail: err.Error()})
		} else {
			checks = append(checks, check{Name: "reachability", OK: true, Detail: opts.BaseUrl})
		}

		vmem, err := mem.VirtualMemoryWithContext(cmd.Context())
		if err != nil {
			checks = append(checks, check{Name: "memory", OK: false, Detail: err.Error()})
		} else {
			availableMb := vmem.Available / 1024 / 1024
			checks = append(checks, check{
				Name:   "memory",
				OK:     availableMb >= minAvailableMemoryMb,
				Detail: fmt.Sprintf("%d MB available of %d MB", availableMb, vmem.Total/1024/1024),
			})
		}

		healthy := true
		for _, c := range checks {
			healthy = healthy && c.OK
		}

		if g.JSON {
			err := utils.PrintJSON(checks)
			if err != nil {
				return err
			}
		} else {
			t := utils.NewTable()
			t.AppendHeader(table.Row{"Check", "Status", "Detail"})
			for _, c := range checks {
				status := "ok"
				if !c.OK {
					status = "failed"
				}
				t.AppendRow(table.Row{c.Name, status, c.Detail})
			}
			t.Render()
		}

		if !healthy {
			return errFailed
		}
		return nil
	},
}
