// Package parquet provides data structures and functions for exporting score
// results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/NishizukaKoichi/score-function/schema"
	"github.com/parquet-go/parquet-go"
)

// FaceScoreRecord is one face of one score computation.
// The aggregate columns repeat on every row so that each row stands alone.
type FaceScoreRecord struct {
	// ComputedAt is when the result was produced (stored as TIMESTAMP with nanosecond precision)
	ComputedAt time.Time `parquet:"computed_at,snappy"`

	// Profile is the profile the weighted score was computed with
	Profile string `parquet:"profile,snappy,dict"`

	// Face is the face name, e.g. "spec"
	Face string `parquet:"face,snappy,dict"`

	// Position is the index of the face in the canonical face order
	Position int32 `parquet:"position,snappy"`

	// Raw is the face score before profile weighting
	Raw float64 `parquet:"raw,snappy"`

	// Weighted is the face score after profile weighting
	Weighted float64 `parquet:"weighted,snappy"`

	// Label is the band of the raw score
	Label string `parquet:"label,snappy,dict"`

	Geo    float64 `parquet:"geo,snappy"`
	Final  float64 `parquet:"final,snappy"`
	GateOK bool    `parquet:"gate_ok,snappy"`
}

// ConvertResult flattens a result into one record per face, in face order.
func ConvertResult(result schema.ScoreFunctionResult, label func(float64) string, computedAt time.Time) []FaceScoreRecord {
	records := make([]FaceScoreRecord, 0, len(schema.FaceOrder))
	for i, face := range schema.FaceOrder {
		raw := result.Faces.Get(face)
		records = append(records, FaceScoreRecord{
			ComputedAt: computedAt,
			Profile:    result.Profile,
			Face:       string(face),
			Position:   int32(i),
			Raw:        raw,
			Weighted:   result.WeightedFaces.Get(face),
			Label:      label(raw),
			Geo:        result.Geo,
			Final:      result.Final,
			GateOK:     result.GateOK,
		})
	}
	return records
}

// WriteFaceScores writes records to w as a single Parquet file.
func WriteFaceScores(w io.Writer, data []FaceScoreRecord) error {
	writer := parquet.NewGenericWriter[FaceScoreRecord](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteFaceScoresParquet writes records to a Parquet file at outputPath.
func WriteFaceScoresParquet(data []FaceScoreRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return WriteFaceScores(file, data)
}

// ReadFaceScoresParquet reads every record of a Parquet file written by WriteFaceScoresParquet.
func ReadFaceScoresParquet(path string) ([]FaceScoreRecord, error) {
	rows, err := parquet.ReadFile[FaceScoreRecord](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return rows, nil
}
