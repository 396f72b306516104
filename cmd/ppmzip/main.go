// Command ppmzip compresses and decompresses files with ppmzip's PPM
// arithmetic coder.
//
// Usage:
//
//	ppmzip encode <input_path> <output_path> [order]
//	ppmzip decode <input_path> <output_path> [order]
//
// order defaults to ppmzip.DefaultOrder and must match between the encode
// and decode invocations for a given file.
package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-ppm/ppmzip"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <encode|decode> <input_path> <output_path> [order]\n", os.Args[0])
}

func run(args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("ppmzip: expected 3 or 4 arguments, got %d", len(args))
	}

	mode := args[0]
	inputPath := args[1]
	outputPath := args[2]

	order := ppmzip.DefaultOrder
	if len(args) == 4 {
		o, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("ppmzip: invalid order %q: %w", args[3], err)
		}
		order = o
	}

	switch mode {
	case "encode":
		return encodeFile(inputPath, outputPath, order)
	case "decode":
		return decodeFile(inputPath, outputPath, order)
	default:
		return fmt.Errorf("ppmzip: unknown mode %q (want encode or decode)", mode)
	}
}

func encodeFile(inputPath, outputPath string, order int) error {
	input, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("ppmzip: reading input: %w", err)
	}

	enc := ppmzip.NewEncoder(order)
	packed, err := enc.Encode(input)
	if err != nil {
		return fmt.Errorf("ppmzip: encoding: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("ppmzip: creating output: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(input)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("ppmzip: writing length header: %w", err)
	}
	if _, err := w.Write(packed); err != nil {
		return fmt.Errorf("ppmzip: writing body: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("ppmzip: flushing output: %w", err)
	}

	log.Printf("ppmzip: encoded %d bytes -> %d bytes (order %d)", len(input), 4+len(packed), order)
	return nil
}

func decodeFile(inputPath, outputPath string, order int) error {
	framed, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("ppmzip: reading input: %w", err)
	}
	if len(framed) < 4 {
		return fmt.Errorf("ppmzip: input too short for length header (%d bytes)", len(framed))
	}

	length := int(binary.BigEndian.Uint32(framed[:4]))
	body := framed[4:]

	dec := ppmzip.NewDecoder(order)
	output, err := dec.Decode(body, length)
	if err != nil {
		return fmt.Errorf("ppmzip: decoding: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("ppmzip: creating output: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("ppmzip: writing output: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("ppmzip: flushing output: %w", err)
	}

	log.Printf("ppmzip: decoded %d bytes -> %d bytes (order %d)", len(framed), length, order)
	return nil
}
