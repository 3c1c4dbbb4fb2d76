//go:build integration

package repositories_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"bakbukBack/internal/models"
	"bakbukBack/internal/moderation"
	"bakbukBack/internal/repositories"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	os.Exit(runWithMySQL(m))
}

func runWithMySQL(m *testing.M) int {
	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.0",
		tcmysql.WithDatabase("bakbuk"),
		tcmysql.WithUsername("bakbuk"),
		tcmysql.WithPassword("bakbuk"),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mysql container: %v\n", err)
		return 1
	}
	defer container.Terminate(ctx)

	dsn, err := container.ConnectionString(ctx, "parseTime=true")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get mysql connection string: %v\n", err)
		return 1
	}

	testDB, err = sql.Open("mysql", dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open mysql connection: %v\n", err)
		return 1
	}
	defer testDB.Close()

	if err := repositories.EnsureSchema(testDB); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create schema: %v\n", err)
		return 1
	}

	return m.Run()
}

// resetTables empties the tables in dependency order between tests.
func resetTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"reviews", "listings", "users"} {
		if _, err := testDB.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}
}

func seedUser(t *testing.T, name string) int {
	t.Helper()
	result, err := testDB.Exec(`
		INSERT INTO users (name, email, password, phone, is_seller, created_at)
		VALUES (?, ?, 'x', '', true, NOW())
	`, name, name+"@test.local")
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

func seedListing(t *testing.T, sellerID int, status string) int {
	t.Helper()
	result, err := testDB.Exec(`
		INSERT INTO listings (seller_id, title, description, price, category, abv, volume_ml, status, created_at)
		VALUES (?, 'Macallan 18', '', 450, 'Whiskey', 43, 700, ?, NOW())
	`, sellerID, status)
	if err != nil {
		t.Fatalf("failed to seed listing: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

func sellerAggregate(t *testing.T, sellerID int) (float64, int) {
	t.Helper()
	var rating float64
	var count int
	err := testDB.QueryRow(`SELECT rating, reviews_count FROM users WHERE id = ?`, sellerID).Scan(&rating, &count)
	if err != nil {
		t.Fatalf("failed to read seller aggregate: %v", err)
	}
	return rating, count
}

func TestCreateReviewRecomputesAverage(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := repositories.ReviewRepository{DB: testDB}

	seller := seedUser(t, "seller")
	ratings := []int{5, 4, 3}
	want := []float64{5, 4.5, 4}

	for i, rating := range ratings {
		reviewer := seedUser(t, fmt.Sprintf("reviewer%d", i))
		listing := seedListing(t, seller, moderation.StatusApproved)

		_, err := repo.CreateReview(ctx, models.Review{
			ListingID:  listing,
			SellerID:   seller,
			ReviewerID: reviewer,
			Rating:     rating,
			Comment:    "ok",
		})
		if err != nil {
			t.Fatalf("review %d failed: %v", i, err)
		}

		gotRating, gotCount := sellerAggregate(t, seller)
		if math.Abs(gotRating-want[i]) > 0.005 {
			t.Fatalf("after %d reviews: expected rating %v, got %v", i+1, want[i], gotRating)
		}
		if gotCount != i+1 {
			t.Fatalf("after %d reviews: expected count %d, got %d", i+1, i+1, gotCount)
		}
	}
}

func TestCreateReviewDuplicateRejected(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := repositories.ReviewRepository{DB: testDB}

	seller := seedUser(t, "seller")
	reviewer := seedUser(t, "reviewer")
	listing := seedListing(t, seller, moderation.StatusApproved)

	review := models.Review{ListingID: listing, SellerID: seller, ReviewerID: reviewer, Rating: 5}
	if _, err := repo.CreateReview(ctx, review); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	review.Rating = 1
	if _, err := repo.CreateReview(ctx, review); !errors.Is(err, models.ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}

	rating, count := sellerAggregate(t, seller)
	if rating != 5 || count != 1 {
		t.Fatalf("rejected duplicate changed the aggregate: rating %v, count %d", rating, count)
	}
}

func TestCreateReviewWrongSellerRejected(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := repositories.ReviewRepository{DB: testDB}

	seller := seedUser(t, "seller")
	other := seedUser(t, "other")
	reviewer := seedUser(t, "reviewer")
	listing := seedListing(t, seller, moderation.StatusApproved)

	_, err := repo.CreateReview(ctx, models.Review{
		ListingID: listing, SellerID: other, ReviewerID: reviewer, Rating: 4,
	})
	if !errors.Is(err, models.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestGetListingByIDCountsApprovedViewsOnly(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := repositories.ListingRepository{DB: testDB}

	seller := seedUser(t, "seller")
	approved := seedListing(t, seller, moderation.StatusApproved)
	pending := seedListing(t, seller, moderation.StatusPending)

	for i := 1; i <= 3; i++ {
		l, err := repo.GetListingByID(ctx, approved)
		if err != nil {
			t.Fatalf("read %d failed: %v", i, err)
		}
		if l.ViewCount != i {
			t.Fatalf("read %d: expected view count %d in returned snapshot, got %d", i, i, l.ViewCount)
		}
	}

	var stored int
	if err := testDB.QueryRow(`SELECT view_count FROM listings WHERE id = ?`, approved).Scan(&stored); err != nil {
		t.Fatal(err)
	}
	if stored != 3 {
		t.Fatalf("expected stored view count 3, got %d", stored)
	}

	l, err := repo.GetListingByID(ctx, pending)
	if err != nil {
		t.Fatalf("pending read failed: %v", err)
	}
	if l.ViewCount != 0 {
		t.Fatalf("pending listing view count changed: %d", l.ViewCount)
	}
}

func TestDeleteListingRemovesReviewsAndRecomputesRating(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	listingRepo := repositories.ListingRepository{DB: testDB}
	reviewRepo := repositories.ReviewRepository{DB: testDB}

	seller := seedUser(t, "seller")
	first := seedListing(t, seller, moderation.StatusApproved)
	second := seedListing(t, seller, moderation.StatusApproved)

	for listingID, rating := range map[int]int{first: 5, second: 3} {
		reviewer := seedUser(t, fmt.Sprintf("reviewer%d", listingID))
		if _, err := reviewRepo.CreateReview(ctx, models.Review{
			ListingID: listingID, SellerID: seller, ReviewerID: reviewer, Rating: rating,
		}); err != nil {
			t.Fatalf("review failed: %v", err)
		}
	}

	if err := listingRepo.DeleteListing(ctx, first); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var orphaned int
	if err := testDB.QueryRow(`SELECT COUNT(*) FROM reviews WHERE listing_id = ?`, first).Scan(&orphaned); err != nil {
		t.Fatal(err)
	}
	if orphaned != 0 {
		t.Fatalf("expected cascade to remove reviews, %d left", orphaned)
	}

	rating, count := sellerAggregate(t, seller)
	if rating != 3 || count != 1 {
		t.Fatalf("expected aggregate recomputed to 3/1, got %v/%d", rating, count)
	}

	if err := listingRepo.DeleteListing(ctx, second); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	rating, count = sellerAggregate(t, seller)
	if rating != 0 || count != 0 {
		t.Fatalf("expected empty aggregate after last delete, got %v/%d", rating, count)
	}
}

func TestCreateListingReturnsStoredTimestamp(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := repositories.ListingRepository{DB: testDB}

	seller := seedUser(t, "seller")
	created, err := repo.CreateListing(ctx, models.Listing{
		SellerID: seller,
		Title:    "Macallan 18",
		Price:    450,
		Category: models.CategoryWhiskey,
		ABV:      43,
		VolumeML: 700,
		Status:   moderation.StatusApproved,
		Confidence: &models.ConfidenceResult{
			Score:       0.92,
			Labels:      []string{"bottle", "alcohol", "clear label"},
			Explanation: "Positive identification of packaging.",
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.GetListingByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if !created.CreatedAt.Equal(stored.CreatedAt) {
		t.Fatalf("returned created_at %v differs from stored %v", created.CreatedAt, stored.CreatedAt)
	}
	if stored.Confidence == nil || stored.Confidence.Score != 0.92 {
		t.Fatalf("confidence snapshot not preserved: %+v", stored.Confidence)
	}
}
