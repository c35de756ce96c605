package recommendation

import (
	"context"
	"fmt"
	"time"

	"myOysterGuide/domain"
	"myOysterGuide/pkg/logger"
	"myOysterGuide/pkg/metrics"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// Mode selects the ranking strategy for a recommendation request.
type Mode string

const (
	ModeAttribute     Mode = "attribute"
	ModeCollaborative Mode = "collaborative"
	ModeHybrid        Mode = "hybrid"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeAttribute, ModeCollaborative, ModeHybrid:
		return true
	}
	return false
}

// Limit policy. Out-of-range values are clamped, never rejected.
const (
	DefaultLimit           = 10
	MaxRecommendationLimit = 50
)

// Empty-result reasons surfaced in response metadata.
const (
	ReasonNoProfile           = "no taste profile available"
	ReasonInsufficientReviews = "insufficient reviews"
	ReasonNoNeighborSignal    = "no overlapping raters found"
	ReasonNoCandidates        = "no unrated oysters available"
)

// ---- Repository interfaces ----

// ReviewRepository is the narrow read surface the engine needs from the
// review store.
type ReviewRepository interface {
	GetReviewsForUser(ctx context.Context, userID uint) ([]domain.Review, error)
	UserIDsWithMinReviews(ctx context.Context, min int) ([]uint, error)
}

type OysterRepository interface {
	GetAllOystersExcept(ctx context.Context, excludedIDs []uint64) ([]domain.Oyster, error)
}

// TasteProfileRepository returns nil (not an error) when the user has
// no explicit baseline.
type TasteProfileRepository interface {
	GetBaselineProfile(ctx context.Context, userID uint) (*domain.TasteProfile, error)
}

type UserRepository interface {
	GetUsersByIDs(ctx context.Context, ids []uint) ([]domain.User, error)
}

type EventRepository interface {
	SaveEvent(ctx context.Context, event domain.RecommendationEvent) error
}

// ---- Facade ----

// Result is the request-scoped outcome of one recommendation query.
// Reason is set when Items is empty for a non-error cause.
type Result struct {
	Items  []domain.RecommendedOyster `json:"items"`
	Mode   Mode                       `json:"mode"`
	Reason string                     `json:"reason,omitempty"`
}

// RecommendationService orchestrates the engine components per request
// and applies the exclusion and limit policies. All state is request
// scoped; concurrent calls share nothing mutable.
type RecommendationService struct {
	reviewRepo  ReviewRepository
	oysterRepo  OysterRepository
	profileRepo TasteProfileRepository
	userRepo    UserRepository
	eventRepo   EventRepository

	profiles      *ProfileBuilder
	attribute     *AttributeRecommender
	matrix        *RatingMatrixView
	collaborative *CollaborativeRecommender
	similarUsers  *SimilarUserFinder
	hybrid        *HybridCombiner
}

func NewRecommendationService(
	reviewRepo ReviewRepository,
	oysterRepo OysterRepository,
	profileRepo TasteProfileRepository,
	userRepo UserRepository,
	eventRepo EventRepository,
) *RecommendationService {
	matrix := NewRatingMatrixView(reviewRepo)

	return &RecommendationService{
		reviewRepo:    reviewRepo,
		oysterRepo:    oysterRepo,
		profileRepo:   profileRepo,
		userRepo:      userRepo,
		eventRepo:     eventRepo,
		profiles:      NewProfileBuilder(profileRepo, reviewRepo),
		attribute:     NewAttributeRecommender(),
		matrix:        matrix,
		collaborative: NewCollaborativeRecommender(matrix),
		similarUsers:  NewSimilarUserFinder(matrix, userRepo),
		hybrid:        NewHybridCombiner(),
	}
}

func clampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}

// Recommend produces the ranked list for one user and mode. Oysters the
// user already reviewed are never candidates. "No data" conditions come
// back as an empty Result with a reason, not as an error.
func (s *RecommendationService) Recommend(ctx context.Context, userID uint, mode Mode, limit int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context error: %w", err)
	}
	if !mode.Valid() {
		return Result{}, fmt.Errorf("unknown recommendation mode %q", mode)
	}

	limit = clampLimit(limit, MaxRecommendationLimit)

	reviews, err := s.reviewRepo.GetReviewsForUser(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("load reviews: %w", err)
	}

	reviewedIDs := make([]uint64, 0, len(reviews))
	for _, r := range reviews {
		reviewedIDs = append(reviewedIDs, r.OysterID)
	}

	// candidates and profile come from independent reads
	var (
		candidates []domain.Oyster
		profile    *TasteVector
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = s.oysterRepo.GetAllOystersExcept(gctx, reviewedIDs)
		if err != nil {
			return fmt.Errorf("load candidates: %w", err)
		}
		return nil
	})
	if mode == ModeAttribute || mode == ModeHybrid {
		g.Go(func() error {
			var err error
			profile, err = s.profiles.BuildProfile(gctx, userID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Mode: mode, Items: []domain.RecommendedOyster{}}

	switch {
	case len(candidates) == 0:
		result.Reason = ReasonNoCandidates

	case mode == ModeAttribute:
		if profile == nil {
			result.Reason = ReasonNoProfile
			break
		}
		result.Items = s.attribute.Recommend(profile, candidates, limit)

	case mode == ModeCollaborative:
		if len(reviews) < MinReviewsForCollaborative {
			result.Reason = ReasonInsufficientReviews
			break
		}
		items, err := s.collaborative.Recommend(ctx, userID, candidates, limit)
		if err != nil {
			return Result{}, err
		}
		if len(items) == 0 {
			result.Reason = ReasonNoNeighborSignal
			break
		}
		// rescale predicted ratings to the shared 0-100 range
		for i := range items {
			items[i].Score = normalizeCollabScore(items[i].Score)
		}
		result.Items = items

	case mode == ModeHybrid:
		// compute both sides even when one has nothing; the combiner
		// handles the asymmetry
		attrItems := s.attribute.Recommend(profile, candidates, limit)

		collabItems := []domain.RecommendedOyster{}
		if len(reviews) >= MinReviewsForCollaborative {
			collabItems, err = s.collaborative.Recommend(ctx, userID, candidates, limit)
			if err != nil {
				return Result{}, err
			}
		}

		result.Items = s.hybrid.Combine(attrItems, collabItems, limit)
		if len(result.Items) == 0 {
			if profile == nil && len(reviews) < MinReviewsForCollaborative {
				result.Reason = ReasonInsufficientReviews
			} else {
				result.Reason = ReasonNoNeighborSignal
			}
		}
	}

	metrics.RecommendRequestsTotal.WithLabelValues(string(mode)).Inc()
	if len(result.Items) == 0 {
		metrics.RecommendEmptyTotal.WithLabelValues(string(mode)).Inc()
	}

	s.logEvent(ctx, userID, mode, limit, len(result.Items), result.Reason)

	return result, nil
}

// SimilarUsers ranks other users by rating-pattern similarity. The
// limit is clamped to the engine-wide similar-user cap.
func (s *RecommendationService) SimilarUsers(ctx context.Context, userID uint, limit int) ([]domain.SimilarUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	limit = clampLimit(limit, MaxSimilarUsers)

	users, err := s.similarUsers.FindSimilar(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	SimilarUserQueriesTotal.Inc()

	return users, nil
}

// logEvent records the served request for offline analysis. Failures
// are logged and swallowed, they never fail the request.
func (s *RecommendationService) logEvent(ctx context.Context, userID uint, mode Mode, limit, served int, reason string) {
	if s.eventRepo == nil {
		return
	}

	event := domain.RecommendationEvent{
		UserID: userID,
		Mode:   string(mode),
		Served: served,
		Context: datatypes.JSONMap{
			"limit":      limit,
			"trace_id":   TraceIDFromContext(ctx),
			"event_time": time.Now().Format(time.RFC3339),
		},
		CreatedAt: time.Now(),
	}
	if reason != "" {
		event.Context["reason"] = reason
	}

	if err := s.eventRepo.SaveEvent(ctx, event); err != nil {
		logger.Error("failed to save recommendation event", err, "user_id", userID, "mode", string(mode))
	}
}
