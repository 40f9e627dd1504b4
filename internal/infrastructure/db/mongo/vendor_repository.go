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

const collectionVendorEntries = "visionboard-vendordirectoryentries"

// VendorRepository persists vendor directory entry documents. It carries no
// ownership knowledge: the board service only passes it ids resolved through
// an owned board's entry set.
type VendorRepository struct {
	col *mongo.Collection
}

func NewVendorRepository(db *mongo.Database) *VendorRepository {
	return &VendorRepository{col: db.Collection(collectionVendorEntries)}
}

type mongoVendorEntry struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name,omitempty"`
	PrimaryContact string             `bson:"primaryContact,omitempty"`
	Type           string             `bson:"type,omitempty"`
	Status         string             `bson:"status,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func (me *mongoVendorEntry) toDomain() domain.VendorEntry {
	return domain.VendorEntry{
		ID:             me.ID.Hex(),
		Name:           me.Name,
		PrimaryContact: me.PrimaryContact,
		Type:           me.Type,
		Status:         me.Status,
	}
}

func (r *VendorRepository) Create(ctx context.Context, fields domain.NewVendorEntry) (*domain.VendorEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoVendorEntry{
		Name:           fields.Name,
		PrimaryContact: fields.PrimaryContact,
		Type:           fields.Type,
		Status:         fields.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert vendor entry: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	entry := doc.toDomain()
	return &entry, nil
}

func (r *VendorRepository) FindByID(ctx context.Context, id string) (*domain.VendorEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVendorEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoVendorEntry
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrVendorEntryNotFound
		}
		return nil, fmt.Errorf("find vendor entry: %w", err)
	}
	entry := me.toDomain()
	return &entry, nil
}

// FindByIDs returns the entries for the given ids, projected to the fields
// the board view renders. Missing ids are skipped.
func (r *VendorRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.VendorEntry, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []domain.VendorEntry{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := optionsFindProjection(bson.M{"name": 1, "primaryContact": 1, "type": 1, "status": 1})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list vendor entries: %w", err)
	}
	defer cur.Close(ctx)

	entries := []domain.VendorEntry{}
	for cur.Next(ctx) {
		var me mongoVendorEntry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode vendor entry: %w", err)
		}
		entries = append(entries, me.toDomain())
	}
	return entries, cur.Err()
}

func (r *VendorRepository) Delete(ctx context.Context, id string) (domain.WriteOutcome, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.OutcomeNotFound, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domain.OutcomeNotFound, fmt.Errorf("delete vendor entry: %w", err)
	}
	return deleteOutcome(res), nil
}
