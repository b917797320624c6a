// Package pipeline coordinates the document understanding stages:
// Classify -> ResolveType -> SelectExtractor -> Extract -> [Summarize] ->
// [Embed] -> Assemble.
//
// The pipeline is stateless; one instance serves any number of concurrent
// documents. It always returns a best-effort structured result: extractor
// faults degrade to the notes extractor, unrecognized overrides are ignored,
// and low classification confidence surfaces as a warning, never an error.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docuscan/docintake/constants"
	"github.com/docuscan/docintake/internal/classify"
	"github.com/docuscan/docintake/internal/common"
	"github.com/docuscan/docintake/internal/enrich"
	"github.com/docuscan/docintake/internal/extract"
	"github.com/docuscan/docintake/internal/textnorm"
)

// Config holds thresholds and behavior flags for the pipeline.
type Config struct {
	MinConfidence   float32 // default 0.60
	SummarySentence int     // notes extractor summary cap, default 3
	NotesKeyPoints  int     // notes extractor key point cap, default 10
}

// Options select per-request behavior.
type Options struct {
	// OverrideType, when set, takes precedence over the detected type.
	OverrideType string
	// IncludeSummary invokes the summarizer on the cleaned text.
	IncludeSummary bool
	// IncludeEmbedding invokes the embedder on the cleaned text.
	IncludeEmbedding bool
}

// Result is the unified response envelope for one document.
type Result struct {
	DetectedType        constants.DocType   `json:"detected_type"`
	UsedType            constants.DocType   `json:"used_type"`
	DetectionConfidence float32             `json:"detection_confidence"`
	Alternatives        []constants.DocType `json:"alternatives,omitempty"`
	OverrideUsed        bool                `json:"override_used"`
	Extraction          extract.Record      `json:"extraction"`
	Summary             string              `json:"summary,omitempty"`
	Embedding           []float32           `json:"embedding,omitempty"`
	// Degraded is set when the selected extractor faulted and the notes
	// fallback produced the extraction instead.
	Degraded bool     `json:"degraded,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Pipeline wires the classifier, the extractor registry and the optional
// enrichment collaborators. Construct once, share freely.
type Pipeline struct {
	logger     *slog.Logger
	cfg        Config
	classifier *classify.Classifier
	extractors map[constants.DocType]extract.Extractor
	fallback   extract.Extractor
	summarizer enrich.Summarizer
	embedder   enrich.Embedder
}

func New(logger *slog.Logger, cfg Config, classifier *classify.Classifier, summarizer enrich.Summarizer, embedder enrich.Embedder) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = 0.60
	}
	if classifier == nil {
		classifier = classify.New(logger)
	}

	notes := &extract.NotesExtractor{
		MaxSentences: cfg.SummarySentence,
		MaxKeyPoints: cfg.NotesKeyPoints,
	}
	return &Pipeline{
		logger:     logger,
		cfg:        cfg,
		classifier: classifier,
		extractors: map[constants.DocType]extract.Extractor{
			constants.Invoice:       extract.NewInvoiceExtractor(),
			constants.Receipt:       extract.NewReceiptExtractor(),
			constants.PurchaseOrder: extract.NewPOExtractor(),
			constants.IDCard:        extract.NewIDExtractor(),
			constants.Notes:         notes,
		},
		fallback:   notes,
		summarizer: summarizer,
		embedder:   embedder,
	}
}

// Detect classifies raw text. The text is cleaned first; callers need not
// pre-normalize.
func (p *Pipeline) Detect(text string) classify.Result {
	return p.classifier.Classify(textnorm.Clean(text))
}

// Run executes the full pipeline for one document. The only returned error
// is context cancellation; everything else degrades into the result.
func (p *Pipeline) Run(ctx context.Context, text string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned := textnorm.Clean(text)
	detected := p.classifier.Classify(cleaned)

	res := &Result{
		DetectedType:        detected.Type,
		DetectionConfidence: detected.Confidence,
		Alternatives:        detected.Alternatives,
	}

	// ResolveType: a recognized override wins over detection; with neither,
	// the notes type is the documented safe fallback.
	usedType := detected.Type
	if opts.OverrideType != "" {
		if dt, ok := constants.Canonicalize(opts.OverrideType); ok {
			usedType = dt
			res.OverrideUsed = true
		} else {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("unrecognized override type %q ignored", opts.OverrideType))
			p.logger.Warn("pipeline.override.unrecognized", "override_type", opts.OverrideType)
		}
	}
	if usedType == constants.Unknown {
		usedType = constants.Notes
	}
	res.UsedType = usedType

	// SelectExtractor: the registry covers every canonical type; the notes
	// fallback is a second net behind it.
	ex, ok := p.extractors[usedType]
	if !ok {
		p.logger.Warn("pipeline.extractor.unmapped", "used_type", usedType)
		ex = p.fallback
	}

	rec, err := safeExtract(ex, cleaned)
	if err != nil {
		// ExtractorFault: recover with the notes extractor, flag degraded.
		// The notes extractor cannot fault on any string input.
		p.logger.Error("pipeline.extract.fault", "used_type", usedType, "error", err)
		res.Degraded = true
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%s extractor failed; fell back to notes", usedType))
		rec, _ = p.fallback.Extract(cleaned)
	}
	res.Extraction = rec

	if detected.Confidence < p.cfg.MinConfidence {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("classification confidence %.2f below threshold %.2f", detected.Confidence, p.cfg.MinConfidence))
	}

	if opts.IncludeSummary && p.summarizer != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		summary, err := p.summarizer.Summarize(ctx, cleaned)
		if err != nil {
			p.logger.Warn("pipeline.summarize.failed", "error", err)
			res.Warnings = append(res.Warnings, "summary unavailable: "+err.Error())
		} else {
			res.Summary = summary
		}
	}

	if opts.IncludeEmbedding && p.embedder != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		embedding, err := p.embedder.Embed(ctx, cleaned)
		if err != nil {
			p.logger.Warn("pipeline.embed.failed", "error", err)
			res.Warnings = append(res.Warnings, "embedding unavailable: "+err.Error())
		} else {
			res.Embedding = embedding
		}
	}

	p.logger.Info("pipeline.run.ok",
		"document_id", common.DocumentIDFromContext(ctx),
		"detected_type", res.DetectedType,
		"used_type", res.UsedType,
		"confidence", res.DetectionConfidence,
		"override_used", res.OverrideUsed,
		"degraded", res.Degraded,
		"warnings", len(res.Warnings),
	)
	return res, nil
}

// safeExtract shields the pipeline from a panicking extractor; a panic comes
// back as a tagged extraction failure.
func safeExtract(ex extract.Extractor, text string) (rec extract.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = common.NewAppError("EXTRACTOR_FAULT", fmt.Sprintf("panic: %v", r), common.ErrInternal)
		}
	}()
	return ex.Extract(text)
}
