package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/planvista/visionboard-api/internal/core/domain"
)

// sweepTimeout bounds the full-collection scans of the repair sweep; regular
// request-path queries use defaultTimeout.
const sweepTimeout = 60 * time.Second

// updateOutcome converts an UpdateResult's matched/modified counts into the
// uniform WriteOutcome variant. Matched-but-unmodified writes (a $pull of an
// absent element, a $set to the current value) are OutcomeUnchanged.
func updateOutcome(res *mongo.UpdateResult) domain.WriteOutcome {
	switch {
	case res.MatchedCount == 0:
		return domain.OutcomeNotFound
	case res.ModifiedCount == 0:
		return domain.OutcomeUnchanged
	default:
		return domain.OutcomeModified
	}
}

// deleteOutcome converts a DeleteResult into the WriteOutcome variant.
func deleteOutcome(res *mongo.DeleteResult) domain.WriteOutcome {
	if res.DeletedCount == 0 {
		return domain.OutcomeNotFound
	}
	return domain.OutcomeModified
}

// refInsert and refPull build the reference-set updates. They deliberately
// carry nothing but the set operator: bundling another mutation (a timestamp
// bump, say) would make every matched document count as modified, and the
// modified count is what tells a matched-but-absent pull (OutcomeUnchanged)
// apart from a pull that actually removed the reference (OutcomeModified).
// Callers gate follow-up writes on that distinction.
func refInsert(field string, id primitive.ObjectID) bson.M {
	return bson.M{"$addToSet": bson.M{field: id}}
}

func refPull(field string, id primitive.ObjectID) bson.M {
	return bson.M{"$pull": bson.M{field: id}}
}

func uniqueIndex(name string) *options.IndexOptions {
	return options.Index().SetName(name).SetUnique(true)
}

func optionsFindProjection(projection bson.M) *options.FindOptions {
	return options.Find().SetProjection(projection)
}
