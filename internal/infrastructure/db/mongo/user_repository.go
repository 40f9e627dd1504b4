package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/planvista/visionboard-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Name         string               `bson:"name,omitempty"`
	Email        string               `bson:"email"`
	Username     string               `bson:"username"`
	PasswordHash string               `bson:"passwordHash"`
	VisionBoards []primitive.ObjectID `bson:"visionBoards"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

func (mu *mongoUser) toDomain() *domain.User {
	refs := make([]string, 0, len(mu.VisionBoards))
	for _, oid := range mu.VisionBoards {
		refs = append(refs, oid.Hex())
	}
	return &domain.User{
		ID:           mu.ID.Hex(),
		Name:         mu.Name,
		Email:        mu.Email,
		Username:     mu.Username,
		PasswordHash: mu.PasswordHash,
		BoardRefs:    refs,
		CreatedAt:    mu.CreatedAt,
		UpdatedAt:    mu.UpdatedAt,
	}
}

// Create inserts a new user document. A duplicate-key error on one of the
// unique indexes is mapped to the field-specific domain error by inspecting
// which index was violated.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Name:         user.Name,
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		VisionBoards: []primitive.ObjectID{},
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "email") {
				return nil, domain.ErrEmailTaken
			}
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindByLogin retrieves a user whose username or email matches login.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"username": login},
		bson.M{"email": login},
	}}

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by login: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// AddBoardRef adds boardID to the user's reference set with $addToSet, so a
// duplicate delivery of the same push cannot create a second reference.
// An already-present reference reports OutcomeUnchanged.
func (r *UserRepository) AddBoardRef(ctx context.Context, userID, boardID string) (domain.WriteOutcome, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.OutcomeNotFound, nil
	}
	bid, err := primitive.ObjectIDFromHex(boardID)
	if err != nil {
		return domain.OutcomeNotFound, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, refInsert("visionBoards", bid))
	if err != nil {
		return domain.OutcomeNotFound, fmt.Errorf("add board ref: %w", err)
	}
	return updateOutcome(res), nil
}

// RemoveBoardRef pulls boardID from the user's reference set. Pulling an
// absent reference reports OutcomeUnchanged.
func (r *UserRepository) RemoveBoardRef(ctx context.Context, userID, boardID string) (domain.WriteOutcome, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.OutcomeNotFound, nil
	}
	bid, err := primitive.ObjectIDFromHex(boardID)
	if err != nil {
		return domain.OutcomeNotFound, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, refPull("visionBoards", bid))
	if err != nil {
		return domain.OutcomeNotFound, fmt.Errorf("remove board ref: %w", err)
	}
	return updateOutcome(res), nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID, hash string) (domain.WriteOutcome, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.OutcomeNotFound, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"passwordHash": hash, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return domain.OutcomeNotFound, fmt.Errorf("update password hash: %w", err)
	}
	return updateOutcome(res), nil
}

// ListBoardRefs streams every user's id and reference set. Repair sweep only.
func (r *UserRepository) ListBoardRefs(ctx context.Context) ([]domain.UserBoards, error) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	opts := optionsFindProjection(bson.M{"visionBoards": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list board refs: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.UserBoards
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user refs: %w", err)
		}
		out = append(out, domain.UserBoards{UserID: mu.ID.Hex(), BoardRefs: mu.toDomain().BoardRefs})
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique indexes backing case-insensitive email and
// username uniqueness (values are lowercased before insert).
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: uniqueIndex("email_unique")},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: uniqueIndex("username_unique")},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
