// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

package main

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"crypto/cipher"
	crand "crypto/rand"
	"crypto/sha256"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"golang.org/x/term"

	steganogif "github.com/zanicar/steganogif"
	"github.com/zanicar/steganogif/gif"
)

type opts struct {
	zip bool   // applies compression or decompression
	key []byte // applies encryption or decryption
}

func usage() {
	fmt.Printf("steganogif: correct usage examples:\n")
	fmt.Printf("\t> steganogif [options] -bmp {carrierfile} -content {datafile} -gif {outputfile}\n")
	fmt.Printf("\t> steganogif [options] -content {outputfile} -gif {inputfile}\n")
}

func conceal(bmpFile, contentFile, gifFile string, password []byte, options opts) error {
	data, err := os.ReadFile(contentFile)
	if err != nil {
		return fmt.Errorf("content file: %w", err)
	}

	rfh, err := os.Open(bmpFile)
	if err != nil {
		return fmt.Errorf("carrier file: %w", err)
	}
	defer rfh.Close()

	wfh, err := os.Create(gifFile)
	if err != nil {
		return fmt.Errorf("gif file: %w", err)
	}
	defer wfh.Close()

	if options.zip {
		zdata, err := compress(data)
		if err != nil {
			return fmt.Errorf("compress: %w", err)
		}
		data = zdata
	}

	if options.key != nil {
		cdata, err := encrypt(data, options.key)
		if err != nil {
			return fmt.Errorf("encrypt: %w", err)
		}
		data = cdata
	}

	stegano := gif.New()
	if err := stegano.Conceal(data, password, rfh, wfh); err != nil {
		return fmt.Errorf("conceal: %w", err)
	}

	return nil
}

func reveal(gifFile, contentFile string, password []byte, options opts) error {
	rfh, err := os.Open(gifFile)
	if err != nil {
		return fmt.Errorf("gif file: %w", err)
	}
	defer rfh.Close()

	buf := new(bytes.Buffer)

	stegano := gif.New()
	if err := stegano.Reveal(rfh, password, buf); err != nil {
		if errors.Is(err, steganogif.ErrNoContent) {
			return err
		}
		return fmt.Errorf("reveal: %w", err)
	}

	if options.key != nil {
		pdata, err := decrypt(buf.Bytes(), options.key)
		if err != nil {
			return fmt.Errorf("decrypt: %w", err)
		}
		buf.Reset()
		if _, err := buf.Write(pdata); err != nil {
			return fmt.Errorf("decrypt: %w", err)
		}
	}

	if options.zip {
		zdata, err := decompress(buf.Bytes())
		if err != nil {
			return fmt.Errorf("decompress: %w", err)
		}
		buf.Reset()
		if _, err := buf.Write(zdata); err != nil {
			return fmt.Errorf("decompress: %w", err)
		}
	}

	wfh, err := os.Create(contentFile)
	if err != nil {
		return fmt.Errorf("content file: %w", err)
	}
	defer wfh.Close()

	buf.WriteTo(wfh)

	return nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := zlib.NewWriter(&buf)
	n, err := zw.Write(data)
	if err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	log.Printf("%d bytes compressed to %d bytes", n, buf.Len())

	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	var ibuf bytes.Buffer
	ibuf.Write(data)

	zr, err := zlib.NewReader(&ibuf)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var obuf bytes.Buffer
	if _, err := io.Copy(&obuf, zr); err != nil {
		return nil, err
	}

	log.Printf("%d bytes decompressed to %d bytes", len(data), obuf.Len())

	return obuf.Bytes(), nil
}

func encrypt(data []byte, key []byte) ([]byte, error) {
	var buf bytes.Buffer

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, 12)
	if _, err := crand.Read(nonce); err != nil {
		return nil, err
	}
	buf.Write(nonce)

	cd := aesgcm.Seal(data[:0], nonce, data, nil)
	buf.Write(cd)

	log.Printf("%d bytes encrypted to %d bytes", len(data), buf.Len())

	return buf.Bytes(), nil
}

func decrypt(data []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := data[:12]
	cd := data[12:]

	ptb, err := aesgcm.Open(nil, nonce, cd, nil)
	if err != nil {
		return nil, err
	}

	log.Printf("%d bytes decrypted to %d bytes", len(data), len(ptb))

	return ptb, nil
}

// readPassword returns the password flag value verbatim if set, otherwise
// prompts interactively with echo disabled.
func readPassword(flagValue string) ([]byte, error) {
	if flagValue != "" {
		return []byte(flagValue), nil
	}
	fmt.Fprint(os.Stderr, "password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}

func main() {
	log.SetFlags(0)
	log.SetOutput(ioutil.Discard)

	var fhelp bool
	flag.BoolVar(&fhelp, "h", false, "help")

	var fverbose bool
	flag.BoolVar(&fverbose, "v", false, "verbose mode")

	var gifFile, contentFile, bmpFile, password string
	flag.StringVar(&gifFile, "gif", "", "path to the GIF container (output on conceal, input on reveal)")
	flag.StringVar(&contentFile, "content", "", "path to the payload (input on conceal, output on reveal)")
	flag.StringVar(&bmpFile, "bmp", "", "path to the carrier still image; its presence selects conceal mode")
	flag.StringVar(&password, "password", "", "password; prompted interactively if omitted")

	var fzip bool
	flag.BoolVar(&fzip, "z", false, "applies zip compression or decompression to the payload")

	var key string
	flag.StringVar(&key, "key", "", "key used for payload encryption/decryption (use a secure key)")

	flag.Parse()

	if fhelp {
		usage()
		fmt.Printf("\nflag and option details:\n")
		flag.PrintDefaults()
		return
	}

	if fverbose {
		log.SetOutput(os.Stderr)
	}

	if gifFile == "" || contentFile == "" {
		usage()
		os.Exit(1)
	}

	options := opts{zip: fzip}
	if key != "" {
		shaKey := sha256.Sum256([]byte(key))
		options.key = shaKey[:]
	}

	pw, err := readPassword(password)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}

	if bmpFile != "" {
		if err := conceal(bmpFile, contentFile, gifFile, pw, options); err != nil {
			log.SetOutput(os.Stderr)
			log.Fatal(err)
		}
		return
	}

	if err := reveal(gifFile, contentFile, pw, options); err != nil {
		if errors.Is(err, steganogif.ErrNoContent) {
			fmt.Fprintln(os.Stderr, "no content matches this password")
			return
		}
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
