package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/colorful"
)

// Output names used by the interactive converter
const pairName = "cr"

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// interactive prompts for a filename and mode on in, then converts the
// image into dir/cr.png and dir/cr_.png. Conversion errors are reported on
// out rather than returned.
func interactive(in io.Reader, out io.Writer, conv *colorful.Converter, dir string) error {
	r := bufio.NewReader(in)

	fmt.Fprint(out, "Filename: ")
	file, err := readLine(r)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "9 or 10-bit mode: ")
	answer, err := readLine(r)
	if err != nil {
		return err
	}

	mode := colorful.ParseMode(answer)
	fmt.Fprintf(out, "(Converting into %d-bit format.)\n", mode.Bits())

	mainFile, residualFile := colorful.PairNames(dir, pairName)

	if err := conv.Convert(context.Background(), file, mainFile, residualFile, colorful.Options{
		Mode: mode,
		Progress: func(y, height int) {
			fmt.Fprintf(out, "%d / %d\n", y, height)
		},
	}); err != nil {
		fmt.Fprintln(out, err)
	}

	return nil
}
