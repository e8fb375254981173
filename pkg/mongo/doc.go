// Package mongo connects to MongoDB with go.mongodb.org/mongo-driver/v2.
// It is used when subscription records are kept in MongoDB (STORE_DRIVER=mongo):
//
//	db, err := mongo.NewDatabase(ctx, config.MustLoad[mongo.Config]())
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	store := substore.NewMongoStore(db)
package mongo
