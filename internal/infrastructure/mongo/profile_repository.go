package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

type profileDocument struct {
	UID      string `bson:"_id"`
	Name     string `bson:"name"`
	Phone    string `bson:"phone"`
	Address  string `bson:"address"`
	Location string `bson:"location"`
}

// ProfileRepo perfiles por UID (_id = UID).
type ProfileRepo struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepo {
	return &ProfileRepo{coll: db.Collection(ProfilesCollection)}
}

func (r *ProfileRepo) Get(ctx context.Context, uid string) (*entity.DeliveryProfile, error) {
	var doc profileDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &entity.DeliveryProfile{Name: doc.Name, Phone: doc.Phone, Address: doc.Address, Location: doc.Location}, nil
}

// Upsert $set de los cuatro campos; el resto del documento se conserva.
func (r *ProfileRepo) Upsert(ctx context.Context, uid string, profile entity.DeliveryProfile) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{
			"name":     profile.Name,
			"phone":    profile.Phone,
			"address":  profile.Address,
			"location": profile.Location,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
