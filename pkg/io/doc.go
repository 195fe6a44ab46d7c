// Package io writes generated diagram artifacts to disk.
//
// # Overview
//
// Generation must be idempotent: re-running it with unchanged inputs leaves
// byte-identical files behind, and an interrupted run never leaves a
// truncated image where a good one used to be. [WriteFileAtomic] gets there by
// writing to a temporary file in the target directory and renaming it over
// the destination.
//
//	if err := io.EnsureDir("imgs"); err != nil {
//	    return err
//	}
//	err := io.WriteFileAtomic("imgs/system_app.png", png)
//
// # Descriptions
//
// [ExportDescription] writes a [diagram.Description] as JSON or YAML, chosen
// by file extension, so the declared graph can be checked without looking at
// pixels.
//
// [diagram.Description]: github.com/matzehuels/camdiagram/pkg/diagram.Description
package io
