// Package loader ingests JSON-lines data files into the stores.
package loader

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/targetlink/targetlink/domain/disease"
	"github.com/targetlink/targetlink/domain/evidence"
	"github.com/targetlink/targetlink/domain/gene"
	"github.com/targetlink/targetlink/internal/log"
)

// Kind selects which record type a file contains.
type Kind string

// Supported record kinds.
const (
	KindEvidence Kind = "evidence"
	KindGenes    Kind = "genes"
	KindDiseases Kind = "diseases"
)

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindEvidence, KindGenes, KindDiseases:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown record kind %q", s)
	}
}

// Stats summarizes an ingestion run.
type Stats struct {
	Loaded  int
	Skipped int
}

// Loader reads JSON-lines files and writes their records in batches.
type Loader struct {
	evidence  evidence.Store
	genes     gene.Store
	diseases  disease.Store
	chunkSize int
	logger    *log.Logger
}

// New creates a Loader.
func New(
	evidenceStore evidence.Store,
	geneStore gene.Store,
	diseaseStore disease.Store,
	chunkSize int,
	logger *log.Logger,
) *Loader {
	return &Loader{
		evidence:  evidenceStore,
		genes:     geneStore,
		diseases:  diseaseStore,
		chunkSize: chunkSize,
		logger:    logger,
	}
}

// LoadFile ingests a JSON-lines file of the given kind.
func (l *Loader) LoadFile(ctx context.Context, kind Kind, path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return l.Load(ctx, kind, f)
}

// Load ingests JSON-lines records of the given kind from r. Lines that do
// not parse or fail validation are skipped with a warning; I/O and storage
// errors abort the load.
func (l *Loader) Load(ctx context.Context, kind Kind, r io.Reader) (Stats, error) {
	switch kind {
	case KindEvidence:
		return l.loadEvidence(ctx, r)
	case KindGenes:
		return l.loadGenes(ctx, r)
	case KindDiseases:
		return l.loadDiseases(ctx, r)
	default:
		return Stats{}, fmt.Errorf("unknown record kind %q", kind)
	}
}

type evidenceRecord struct {
	TargetID   string   `json:"target_id"`
	DiseaseID  string   `json:"disease_id"`
	Datasource string   `json:"datasource"`
	Score      float64  `json:"score"`
	EFOCodes   []string `json:"efo_codes"`
}

func (l *Loader) loadEvidence(ctx context.Context, r io.Reader) (Stats, error) {
	var stats Stats
	batch := make([]evidence.Evidence, 0, l.chunkSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.evidence.SaveBatch(ctx, batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	err := forEachLine(r, func(line int, data []byte) error {
		var rec evidenceRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			stats.Skipped++
			l.logger.Warn("skipping unparsable evidence line", "line", line, "error", err)
			return nil
		}
		if rec.TargetID == "" || rec.DiseaseID == "" || rec.Datasource == "" {
			stats.Skipped++
			l.logger.Warn("skipping incomplete evidence line", "line", line)
			return nil
		}

		// The expansion set always contains the record's own disease id.
		codes := rec.EFOCodes
		if !contains(codes, rec.DiseaseID) {
			codes = append(codes, rec.DiseaseID)
		}

		batch = append(batch, evidence.NewEvidence(rec.TargetID, rec.DiseaseID, rec.Datasource, rec.Score, codes))
		stats.Loaded++
		if len(batch) >= l.chunkSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, flush()
}

type geneRecord struct {
	ID              string   `json:"id"`
	ApprovedSymbol  string   `json:"approved_symbol"`
	ApprovedName    string   `json:"approved_name"`
	Biotype         string   `json:"biotype"`
	PathwayCodes    []string `json:"pathway_codes"`
	GOTerms         []string `json:"go_terms"`
	UniprotKeywords []string `json:"uniprot_keywords"`
}

func (l *Loader) loadGenes(ctx context.Context, r io.Reader) (Stats, error) {
	var stats Stats
	batch := make([]gene.Gene, 0, l.chunkSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.genes.SaveBatch(ctx, batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	err := forEachLine(r, func(line int, data []byte) error {
		var rec geneRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			stats.Skipped++
			l.logger.Warn("skipping unparsable gene line", "line", line, "error", err)
			return nil
		}
		if rec.ID == "" {
			stats.Skipped++
			l.logger.Warn("skipping gene line without id", "line", line)
			return nil
		}

		batch = append(batch, gene.NewGene(
			rec.ID,
			rec.ApprovedSymbol,
			rec.ApprovedName,
			rec.Biotype,
			rec.PathwayCodes,
			rec.GOTerms,
			rec.UniprotKeywords,
		))
		stats.Loaded++
		if len(batch) >= l.chunkSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, flush()
}

type diseaseRecord struct {
	ID               string   `json:"id"`
	Label            string   `json:"label"`
	Path             []string `json:"path"`
	TherapeuticAreas []string `json:"therapeutic_areas"`
}

func (l *Loader) loadDiseases(ctx context.Context, r io.Reader) (Stats, error) {
	var stats Stats
	batch := make([]disease.Disease, 0, l.chunkSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.diseases.SaveBatch(ctx, batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	err := forEachLine(r, func(line int, data []byte) error {
		var rec diseaseRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			stats.Skipped++
			l.logger.Warn("skipping unparsable disease line", "line", line, "error", err)
			return nil
		}
		if rec.ID == "" {
			stats.Skipped++
			l.logger.Warn("skipping disease line without id", "line", line)
			return nil
		}

		batch = append(batch, disease.NewDisease(rec.ID, rec.Label, rec.Path, rec.TherapeuticAreas))
		stats.Loaded++
		if len(batch) >= l.chunkSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, flush()
}

// forEachLine calls fn for every non-empty line. Lines can be large JSON
// documents, so the scanner buffer is widened well past the default.
func forEachLine(r io.Reader, fn func(line int, data []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		if err := fn(line, data); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
