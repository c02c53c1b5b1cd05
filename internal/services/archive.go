package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"careercopilot/internal/models"
)

// ArchiveService keeps an embedding of each completed report's job
// description so a user can find earlier reports written for similar
// roles. Only the job description and a short snippet are stored; resume
// text never leaves the session record.
type ArchiveService interface {
	InitCollection() error
	ArchiveReport(ctx context.Context, reportID string, jdSnippet string, embedding []float32) error
	FindSimilar(ctx context.Context, embedding []float32, excludeReportID string, limit int) ([]models.SimilarReport, error)
}

type archiveService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewArchiveService(urlStr, apiKey, collectionName string) (ArchiveService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &archiveService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 vector size
	}, nil
}

// InitCollection implements ArchiveService.
func (a *archiveService) InitCollection() error {
	ctx := context.Background()

	exists, err := a.client.CollectionExists(ctx, a.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Archive collection already exists")
		return nil
	}

	err = a.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: a.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     a.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", a.collectionName)
	return nil
}

// ArchiveReport implements ArchiveService.
func (a *archiveService) ArchiveReport(ctx context.Context, reportID string, jdSnippet string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"report_id":  reportID,
			"jd_snippet": jdSnippet,
		}),
	}

	_, err := a.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: a.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// FindSimilar implements ArchiveService.
func (a *archiveService) FindSimilar(ctx context.Context, embedding []float32, excludeReportID string, limit int) ([]models.SimilarReport, error) {
	var filter *qdrant.Filter
	if excludeReportID != "" {
		filter = &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewMatch("report_id", excludeReportID),
			},
		}
	}

	searchResult, err := a.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: a.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []models.SimilarReport
	for _, point := range searchResult {
		payload := point.Payload

		result := models.SimilarReport{
			Score: point.Score,
		}

		if reportID, ok := payload["report_id"]; ok {
			if val, ok := reportID.GetKind().(*qdrant.Value_StringValue); ok {
				result.ReportID = val.StringValue
			}
		}

		if snippet, ok := payload["jd_snippet"]; ok {
			if val, ok := snippet.GetKind().(*qdrant.Value_StringValue); ok {
				result.JDSnippet = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}
