// Package las is a just-in-time utility-CSS generator.
//
// las scans source files for utility-class tokens such as
// "md:hover:text-center", resolves each token against a precompiled style
// table and a metadata configuration, and writes only the rules that are
// actually used.
//
// # Build
//
// One-shot production build:
//
//	result, err := las.Build(ctx, las.Options{
//		ScanDirs:   []string{"./src"},
//		Extensions: []string{".html", ".tsx"},
//		OutputPath: "dist/las.css",
//		Sources:    las.SourceConfig{AssetsDir: "node_modules/las"},
//	})
//
// # Watch
//
// A Watcher keeps the set of seen tokens and rewrites the output file only
// when a changed file introduces a token that was not seen before.
//
// # Check
//
// Check reports tokens that resolve to nothing, with file, line and column,
// in golangci-lint style.
//
// # CLI Tool
//
//	go install github.com/yacobolo/las/cmd/las@latest
package las
