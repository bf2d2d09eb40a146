package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

const binaryName = "kotoba"

var errNoBinary = errors.New("release archive does not contain the kotoba binary")

type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported once per stage of the update pipeline.
type UpdateProgress struct {
	Stage   string
	Message string
}

// releaseAsset names one downloadable build of a tagged release. Every
// asset ships with a <name>.sha256 sidecar holding its digest.
type releaseAsset struct {
	tag  string
	name string
}

func (c *Checker) assetURL(a releaseAsset) string {
	base := strings.TrimRight(c.downloadBaseURL, "/")
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", base, c.owner, c.repo, a.tag, a.name)
}

// Update downloads the release build for this platform, verifies it against
// its checksum sidecar, and swaps the running binary in place.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag := input.TargetVersion
	if tag == "" {
		progress(UpdateProgress{Stage: "check", Message: "Checking for latest version..."})
		result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !result.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = result.LatestVersion
	}

	name, err := assetNameFor(tag, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	asset := releaseAsset{tag: tag, name: name}

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", tag)})
	archive, err := c.download(ctx, c.assetURL(asset))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	if err := c.verifyAsset(ctx, asset, archive); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "extract", Message: "Extracting binary..."})
	binary, err := extractBinary(archive, asset.name)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{Stage: "apply", Message: "Applying update..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := swapBinary(target, binary); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", tag)})
	return nil
}

// assetNameFor maps a platform to its release archive. Archives are named
// kotoba_<version>_<os>_<arch> with the tag's v prefix stripped, .zip on
// Windows and .tar.gz everywhere else.
func assetNameFor(tag, goos, goarch string) (string, error) {
	switch goos {
	case "linux", "darwin", "windows":
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	switch goarch {
	case "amd64", "arm64":
	default:
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	ext := ".tar.gz"
	if goos == "windows" {
		ext = ".zip"
	}
	return fmt.Sprintf("%s_%s_%s_%s%s", binaryName, strings.TrimPrefix(tag, "v"), goos, goarch, ext), nil
}

// verifyAsset fetches the asset's .sha256 sidecar and compares digests.
// The sidecar's first field is the hex digest; a trailing file name in
// sha256sum output format is tolerated.
func (c *Checker) verifyAsset(ctx context.Context, a releaseAsset, data []byte) error {
	sum, err := c.download(ctx, c.assetURL(releaseAsset{tag: a.tag, name: a.name + ".sha256"}))
	if err != nil {
		return fmt.Errorf("download checksum: %w", err)
	}
	fields := strings.Fields(string(sum))
	if len(fields) == 0 {
		return fmt.Errorf("checksum file for %s is empty", a.name)
	}
	want := strings.ToLower(fields[0])

	digest := sha256.Sum256(data)
	got := hex.EncodeToString(digest[:])
	if got != want {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, want, got)
	}
	return nil
}

func (c *Checker) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

func extractBinary(archive []byte, assetName string) ([]byte, error) {
	if strings.HasSuffix(assetName, ".zip") {
		return binaryFromZip(archive)
	}
	return binaryFromTarGz(archive)
}

func binaryFromTarGz(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, errNoBinary
		}
		if err != nil {
			return nil, fmt.Errorf("read archive: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == binaryName {
			return io.ReadAll(tr)
		}
	}
}

func binaryFromZip(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	for _, f := range r.File {
		if filepath.Base(f.Name) != binaryName+".exe" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, errNoBinary
}

// swapBinary installs data over the file at target. The new binary lands in
// a sibling temp file first; the old binary is parked as <target>.old for
// the duration of the swap because a running executable cannot be
// overwritten in place on every platform. A failure before the final rename
// leaves the original binary untouched.
func swapBinary(target string, data []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write new binary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write new binary: %w", err)
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod new binary: %w", err)
	}

	parked := target + ".old"
	if err := os.Rename(target, parked); err != nil {
		return fmt.Errorf("park old binary: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Rename(parked, target)
		return fmt.Errorf("install new binary: %w", err)
	}
	_ = os.Remove(parked)
	return nil
}
