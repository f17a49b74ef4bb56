package branchRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"localserve/database"
	"localserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no branch matches the given id.
var ErrNotFound = errors.New("branch not found")

// BranchRepository defines read access to fulfillment branches. The booking
// pipeline never writes branches; admin tooling owns mutation.
type BranchRepository interface {
	GetByID(id string) (*models.Branch, error)
	GetActive() ([]models.Branch, error)
}

// MongoBranchRepo implements BranchRepository using MongoDB.
type MongoBranchRepo struct {
	coll *mongo.Collection
}

// NewMongoBranchRepo creates a BranchRepository backed by the "branches"
// collection.
func NewMongoBranchRepo() BranchRepository {
	return &MongoBranchRepo{coll: database.Collection("branches")}
}

func (r *MongoBranchRepo) GetByID(id string) (*models.Branch, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var branch models.Branch
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&branch); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch branch with id %s: %w", id, err)
	}
	return &branch, nil
}

func (r *MongoBranchRepo) GetActive() ([]models.Branch, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve active branches: %w", err)
	}
	defer cursor.Close(ctx)

	var branches []models.Branch
	for cursor.Next(ctx) {
		var b models.Branch
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode branch: %w", err)
		}
		branches = append(branches, b)
	}
	return branches, nil
}
