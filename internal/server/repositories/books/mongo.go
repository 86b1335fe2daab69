package books

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

const CollectionName = "books"

type bookDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Author      string             `bson:"author"`
	ISBN        string             `bson:"isbn"`
	Year        *int               `bson:"year,omitempty"`
	Description string             `bson:"description"`
	Cover       string             `bson:"cover"`
	Status      string             `bson:"status"`
	User        primitive.ObjectID `bson:"user"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *bookDocument) toModel() models.Book {
	return models.Book{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Author:      d.Author,
		ISBN:        d.ISBN,
		Year:        d.Year,
		Description: d.Description,
		Cover:       d.Cover,
		Status:      models.Status(d.Status),
		UserID:      d.User.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the index backing ListByOwner.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("user_created"),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	owner, err := primitive.ObjectIDFromHex(book.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q: %w", book.UserID, err)
	}

	doc := bookDocument{
		ID:          primitive.NewObjectID(),
		Title:       book.Title,
		Author:      book.Author,
		ISBN:        book.ISBN,
		Year:        book.Year,
		Description: book.Description,
		Cover:       book.Cover,
		Status:      string(book.Status),
		User:        owner,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	book.ID = doc.ID.Hex()
	return book, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Book, error) {
	filter, ok := ownedFilter(ownerID, id)
	if !ok {
		return nil, common.ErrorNotFound
	}

	var doc bookDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	book := doc.toModel()
	return &book, nil
}

func (r *MongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	result := make([]models.Book, 0)

	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return result, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc bookDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *MongoRepository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	filter, ok := ownedFilter(book.UserID, book.ID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       book.Title,
		"author":      book.Author,
		"isbn":        book.ISBN,
		"year":        book.Year,
		"description": book.Description,
		"cover":       book.Cover,
		"status":      string(book.Status),
		"updatedAt":   book.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, common.ErrorNotFound
	}
	return book, nil
}

func (r *MongoRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter, ok := ownedFilter(ownerID, id)
	if !ok {
		return common.ErrorNotFound
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// ownedFilter matches a book by id and owner. ok is false when either id is
// not a valid ObjectID, which callers report as not found.
func ownedFilter(ownerID, id string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "user": owner}, true
}
