package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/planvista/visionboard-api/internal/core/domain"
)

const collectionBoards = "visionboards"

// BoardRepository persists vision boards. Single-board operations never
// filter by _id alone: the owner equality constraint is part of the same
// query, so the ownership check and the access are one atomic step.
type BoardRepository struct {
	col *mongo.Collection
}

func NewBoardRepository(db *mongo.Database) *BoardRepository {
	return &BoardRepository{col: db.Collection(collectionBoards)}
}

type mongoBoard struct {
	ID                     primitive.ObjectID   `bson:"_id,omitempty"`
	Owner                  primitive.ObjectID   `bson:"owner"`
	Title                  string               `bson:"title"`
	EventDate              *time.Time           `bson:"eventDate,omitempty"`
	Favorite               bool                 `bson:"favorite,omitempty"`
	IconImage              string               `bson:"iconImage,omitempty"`
	VendorDirectoryEntries []primitive.ObjectID `bson:"vendorDirectoryEntries"`
	CreatedAt              time.Time            `bson:"createdAt"`
	UpdatedAt              time.Time            `bson:"updatedAt"`
}

func (mb *mongoBoard) toDomain() *domain.Board {
	refs := make([]string, 0, len(mb.VendorDirectoryEntries))
	for _, oid := range mb.VendorDirectoryEntries {
		refs = append(refs, oid.Hex())
	}
	return &domain.Board{
		ID:        mb.ID.Hex(),
		Owner:     mb.Owner.Hex(),
		Title:     mb.Title,
		EventDate: mb.EventDate,
		Favorite:  mb.Favorite,
		IconImage: mb.IconImage,
		EntryRefs: refs,
		CreatedAt: mb.CreatedAt,
		UpdatedAt: mb.UpdatedAt,
	}
}

// ownedFilter is the one way a single board is ever addressed.
func ownedFilter(userID, boardID string) (bson.M, bool) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false
	}
	bid, err := primitive.ObjectIDFromHex(boardID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": bid, "owner": uid}, true
}

// CreateOwned inserts a board owned by userID. Input carries no owner field
// at all, so a forged owner can never reach the document.
func (r *BoardRepository) CreateOwned(ctx context.Context, userID string, fields domain.NewBoard) (*domain.Board, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoBoard{
		Owner:                  uid,
		Title:                  fields.Title,
		EventDate:              fields.EventDate,
		VendorDirectoryEntries: []primitive.ObjectID{},
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if fields.Favorite != nil {
		doc.Favorite = *fields.Favorite
	}
	if fields.IconImage != nil {
		doc.IconImage = *fields.IconImage
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert board: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *BoardRepository) FindOwned(ctx context.Context, userID, boardID string) (*domain.Board, error) {
	filter, ok := ownedFilter(userID, boardID)
	if !ok {
		return nil, domain.ErrBoardNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBoard
	if err := r.col.FindOne(ctx, filter).Decode(&mb); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBoardNotFound
		}
		return nil, fmt.Errorf("find board: %w", err)
	}
	return mb.toDomain(), nil
}

// ListByIDs returns summaries projected to the list fields only.
func (r *BoardRepository) ListByIDs(ctx context.Context, boardIDs []string) ([]domain.BoardSummary, error) {
	oids := make([]primitive.ObjectID, 0, len(boardIDs))
	for _, id := range boardIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []domain.BoardSummary{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := optionsFindProjection(bson.M{"title": 1, "eventDate": 1, "favorite": 1})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer cur.Close(ctx)

	summaries := []domain.BoardSummary{}
	for cur.Next(ctx) {
		var mb mongoBoard
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode board summary: %w", err)
		}
		summaries = append(summaries, domain.BoardSummary{
			ID:        mb.ID.Hex(),
			Title:     mb.Title,
			EventDate: mb.EventDate,
			Favorite:  mb.Favorite,
		})
	}
	return summaries, cur.Err()
}

// UpdateOwned applies the non-nil patch fields in a single $set. A nil field
// never reaches the update document, so absent fields are left untouched.
func (r *BoardRepository) UpdateOwned(ctx context.Context, userID, boardID string, patch domain.BoardPatch) (domain.WriteOutcome, error) {
	filter, ok := ownedFilter(userID, boardID)
	if !ok {
		return domain.OutcomeNotFound, nil
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.EventDate != nil {
		set["eventDate"] = *patch.EventDate
	}
	if patch.Favorite != nil {
		set["favorite"] = *patch.Favorite
	}
	if patch.IconImage != nil {
		set["iconImage"] = *patch.IconImage
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return domain.OutcomeNotFound, fmt.Errorf("update board: %w", err)
	}
	return updateOutcome(res), nil
}

func (r *BoardRepository) DeleteOwned(ctx context.Context, userID, boardID string) (domain.WriteOutcome, error) {
	filter, ok := ownedFilter(userID, boardID)
	if !ok {
		return domain.OutcomeNotFound, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return domain.OutcomeNotFound, fmt.Errorf("delete board: %w", err)
	}
	return deleteOutcome(res), nil
}

// AddEntryRef pushes entryID onto the board's entry set ($addToSet), scoped
// by owner like every other board write. An already-present reference
// reports OutcomeUnchanged.
func (r *BoardRepository) AddEntryRef(ctx context.Context, userID, boardID, entryID string) (domain.WriteOutcome, error) {
	filter, ok := ownedFilter(userID, boardID)
	if !ok {
		return domain.OutcomeNotFound, nil
	}
	eid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return domain.OutcomeNotFound, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, refInsert("vendorDirectoryEntries", eid))
	if err != nil {
		return domain.OutcomeNotFound, fmt.Errorf("add entry ref: %w", err)
	}
	return updateOutcome(res), nil
}

// RemoveEntryRef pulls entryID from the board's entry set, scoped by owner.
// Pulling an entry that is not on this board matches the board but modifies
// nothing, so it reports OutcomeUnchanged; the board service relies on that
// to refuse the follow-up entry document delete. OutcomeModified is the only
// proof the entry belonged to the caller's board.
func (r *BoardRepository) RemoveEntryRef(ctx context.Context, userID, boardID, entryID string) (domain.WriteOutcome, error) {
	filter, ok := ownedFilter(userID, boardID)
	if !ok {
		return domain.OutcomeNotFound, nil
	}
	eid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return domain.OutcomeNotFound, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, refPull("vendorDirectoryEntries", eid))
	if err != nil {
		return domain.OutcomeNotFound, fmt.Errorf("remove entry ref: %w", err)
	}
	return updateOutcome(res), nil
}

// ListOwnership streams the id/owner projection of every board. Repair sweep only.
func (r *BoardRepository) ListOwnership(ctx context.Context) ([]domain.BoardOwnership, error) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	opts := optionsFindProjection(bson.M{"owner": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list ownership: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.BoardOwnership
	for cur.Next(ctx) {
		var mb mongoBoard
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode ownership: %w", err)
		}
		out = append(out, domain.BoardOwnership{ID: mb.ID.Hex(), Owner: mb.Owner.Hex()})
	}
	return out, cur.Err()
}

// EnsureIndexes creates the owner index used by every scoped lookup.
func (r *BoardRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
