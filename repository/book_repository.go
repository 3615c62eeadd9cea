package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"bookManagement/models"
)

// BookFileHeader is the single header line every scope file starts with.
const BookFileHeader = "name,author,year"

// ErrNotFound is returned when no record matches the requested name.
var ErrNotFound = errors.New("book not found")

// BookRepository stores one scope's records in a comma-delimited text file,
// one record per line after a single header line. The format carries no
// quoting or escaping: an embedded comma corrupts the row. That is a format
// contract, not a bug; columns are trusted positionally (name, author, year).
//
// Every operation serializes on a per-scope mutex, so a delete's
// copy-and-swap can never lose a concurrent append. Each operation opens and
// releases its own file handle.
type BookRepository struct {
	mu   sync.Mutex
	path string
}

func NewBookRepository(path string) *BookRepository {
	return &BookRepository{path: path}
}

// Path returns the scope file location.
func (r *BookRepository) Path() string { return r.path }

// EnsureFile creates the scope file with its header if it does not exist yet.
func (r *BookRepository) EnsureFile() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create %s: %w", r.path, err)
	}
	if _, err := fmt.Fprintln(f, BookFileHeader); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header %s: %w", r.path, err)
	}
	return f.Close()
}

// List reads every record in the scope, start to finish. A missing file reads
// as an empty collection. Each call re-reads the file, so two calls with no
// intervening mutation yield identical results.
func (r *BookRepository) List(ctx context.Context) ([]models.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	var books []models.Book
	sc := bufio.NewScanner(f)
	header := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if header {
			header = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		books = append(books, parseBookLine(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	return books, nil
}

// Append serializes the record as `name,author,year` and appends it to the
// scope file, flushing to disk before reporting success. Duplicate names are
// not rejected here; DeleteByName removes every matching record to compensate.
func (r *BookRepository) Append(ctx context.Context, book models.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat %s: %w", r.path, err)
	}
	line := fmt.Sprintf("%s,%s,%d\n", book.Name, book.Author, book.PublicationYear)
	if st.Size() == 0 {
		line = BookFileHeader + "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append %s: %w", r.path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync %s: %w", r.path, err)
	}
	return f.Close()
}

// DeleteByName removes every record whose name equals the target
// case-insensitively, using a copy-and-swap rewrite: records stream into a
// temp sibling file, which replaces the original only after the full scan
// succeeds. A failure mid-rewrite never corrupts the original. Returns
// ErrNotFound, with the original untouched, when nothing matches.
func (r *BookRepository) DeleteByName(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	src, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.path, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", r.path, err)
	}
	tmpPath := tmp.Name()
	discard := func() {
		_ = tmp.Close()
		if err := os.Remove(tmpPath); err != nil {
			// recoverable cleanup failure; the outcome already stands
			log.Printf("remove temp file %s: %v", tmpPath, err)
		}
	}

	w := bufio.NewWriter(tmp)
	sc := bufio.NewScanner(src)
	header := true
	found := false
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if header {
			// header goes out exactly once, before any record
			header = false
			if _, err := fmt.Fprintln(w, line); err != nil {
				discard()
				return fmt.Errorf("write temp for %s: %w", r.path, err)
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.EqualFold(strings.Split(line, ",")[0], name) {
			// drop every matching record, not just the first
			found = true
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			discard()
			return fmt.Errorf("write temp for %s: %w", r.path, err)
		}
	}
	if err := sc.Err(); err != nil {
		discard()
		return fmt.Errorf("read %s: %w", r.path, err)
	}
	if !found {
		discard()
		return ErrNotFound
	}
	if err := w.Flush(); err != nil {
		discard()
		return fmt.Errorf("flush temp for %s: %w", r.path, err)
	}
	if err := tmp.Sync(); err != nil {
		discard()
		return fmt.Errorf("sync temp for %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp for %s: %w", r.path, err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

// parseBookLine splits positional columns name,author,year. Extra columns
// are dropped and a non-numeric year reads as 0; both happen when a field
// contained a comma at write time.
func parseBookLine(line string) models.Book {
	fields := strings.Split(line, ",")
	b := models.Book{Name: fields[0]}
	if len(fields) > 1 {
		b.Author = fields[1]
	}
	if len(fields) > 2 {
		if y, err := strconv.Atoi(strings.TrimSpace(fields[2])); err == nil {
			b.PublicationYear = y
		}
	}
	return b
}
