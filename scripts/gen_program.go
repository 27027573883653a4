// Command gen_program compiles each named tinylisp source file into a sibling
// Go file holding its packed program, e.g. fact.tl into fact_program.go
// declaring factProgram and factProgramMask.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/tinylisp/compiler"
	"github.com/jcorbin/tinylisp/internal/artifact"
)

var (
	pkg     = flag.String("package", "main", "package name for generated files")
	timeout = flag.Duration("timeout", 5*time.Second, "overall time limit")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatalln("usage: gen_program [-package name] src.tl...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	for _, src := range flag.Args() {
		src := src
		eg.Go(func() error {
			if err := generate(ctx, src); err != nil {
				return fmt.Errorf("%v: %w", src, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func generate(ctx context.Context, src string) (rerr error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	c, err := compiler.New(compiler.WithName(src))
	if err != nil {
		return err
	}
	prog, err := c.Compile(in)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	outName := filepath.Join(filepath.Dir(src), base+"_program.go")
	out, err := os.Create(outName)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); rerr == nil {
			rerr = cerr
		}
	}()

	return artifact.Write(out, artifact.FromProgram(prog, filepath.Base(src)), artifact.FormatGo, artifact.GoOptions{
		Package: *pkg,
		Var:     varName(base) + "Program",
	})
}

// varName turns a file base name like "count-down" into "countDown".
func varName(base string) string {
	var sb strings.Builder
	upper := false
	for _, r := range base {
		switch {
		case r == '-' || r == '_' || r == '.':
			upper = sb.Len() > 0
		case unicode.IsLetter(r) || unicode.IsDigit(r) && sb.Len() > 0:
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "program"
	}
	return sb.String()
}
