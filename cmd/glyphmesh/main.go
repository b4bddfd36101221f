// Command glyphmesh lays out a markup file and writes the glyph vertex
// buffer and the compiled Loop-Blinn shader.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/glyphmesh"
	"github.com/gogpu/glyphmesh/fonts"
	"github.com/gogpu/glyphmesh/markup"
	"github.com/gogpu/glyphmesh/mesh"
)

func main() {
	var (
		fontDir = flag.String("fonts", ".", "directory font paths are relative to")
		parser  = flag.String("parser", fonts.DefaultParser, "font parser backend (sfnt or gotext)")
		output  = flag.String("output", "", "vertex buffer output file")
		shader  = flag.String("shader", "", "SPIR-V shader output file")
		timeout = flag.Duration("timeout", 30*time.Second, "font loading timeout")
		verbose = flag.Bool("v", false, "log diagnostics to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: glyphmesh [flags] file.gm\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		glyphmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	req, err := readRequest(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	opts := []fonts.LibraryOption{
		fonts.WithLoader(fonts.DirLoader{Root: *fontDir}),
		fonts.WithParser(*parser),
	}
	if req.Candidate.Family != "" {
		opts = append(opts, fonts.WithCandidate(req.Candidate.Family, req.Candidate.Style))
	}
	lib := fonts.NewLibrary(opts...)
	lib.Register(req.Fonts...)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	t := glyphmesh.New(lib, glyphmesh.WithFallbackFamilies(req.Families))
	t.SetConfig(req.Config)
	frame, err := t.Update(ctx)
	if frame.Layout == nil {
		log.Fatalf("Failed to lay out: %v", err)
	}
	if err != nil {
		log.Printf("warning: %v", err)
	}
	t.Wait()
	frame = t.Frame()

	printFrame(frame)

	if *output != "" {
		if err := os.WriteFile(*output, frame.Stream.Bytes(), 0o644); err != nil {
			log.Fatalf("Failed to write vertices: %v", err)
		}
		log.Printf("Vertices saved to %s (%d vertices, stride %d)", *output, frame.Stream.VertexCount(), mesh.VertexStride)
	}
	if *shader != "" {
		if err := writeShader(*shader); err != nil {
			log.Fatal(err)
		}
		log.Printf("Shader saved to %s", *shader)
	}
}

func readRequest(path string) (markup.Request, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return markup.Request{}, err
	}
	doc, err := markup.Parse(path, string(src))
	if err != nil {
		return markup.Request{}, err
	}
	return doc.Build()
}

func printFrame(f glyphmesh.Frame) {
	info := f.Layout
	r, d := info.LayoutRect, info.DirtyRect
	fmt.Printf("layout %.1f,%.1f %.1fx%.1f\n", r.X, r.Y, r.Width, r.Height)
	fmt.Printf("dirty  %.1f,%.1f %.1fx%.1f\n", d.X, d.Y, d.Width, d.Height)
	for i, line := range info.Lines {
		fmt.Printf("line %d: y=%.1f width=%.1f %q\n", i, line.Y, line.Width, line.Text)
	}
	fmt.Printf("%d tokens, %d vertices\n", len(info.Tokens), f.Stream.VertexCount())
}

func writeShader(path string) error {
	words, err := mesh.CompileShader()
	if err != nil {
		return fmt.Errorf("compile shader: %w", err)
	}
	buf := make([]byte, 0, len(words)*4)
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	return os.WriteFile(path, buf, 0o644)
}
