package main

import (
	"encoding/hex"
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain registers "gs2dc" as a virtual command inside the testscript
// process, per rogpeppe/go-internal's documented RunMain pattern: each
// script's "exec gs2dc ..." line runs run() in-process instead of forking
// a built binary.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"gs2dc": run,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			// writegs2 decodes a hex literal into a binary .gs2 module file,
			// since GS2's sectioned byte format doesn't survive as txtar text.
			"writegs2": func(ts *testscript.TestScript, neg bool, args []string) {
				if len(args) != 2 {
					ts.Fatalf("usage: writegs2 <file> <hex>")
				}
				raw, err := hex.DecodeString(args[1])
				if err != nil {
					ts.Fatalf("writegs2: %v", err)
				}
				if err := os.WriteFile(ts.MkAbs(args[0]), raw, 0o644); err != nil {
					ts.Fatalf("writegs2: %v", err)
				}
			},
		},
	})
}
