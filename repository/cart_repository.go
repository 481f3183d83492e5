package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ecom-backend/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// maxTxRetries bounds the optimistic retry loop; WATCH holds no locks, so a
// hot key simply restarts the transaction.
const maxTxRetries = 16

// CartRepository implements CartStore on redis. Each user's cart lives as a
// JSON document under a single key; every mutation is a WATCH/MULTI/EXEC
// compare-and-swap on that key, which keeps the one-entry-per-product
// invariant under concurrent adds from the same user.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a CartRepository. Carts expire after ttl of
// inactivity; every write refreshes the clock.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CartRepository) key(userID uuid.UUID) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// watch runs txn under WATCH on the user's cart key, retrying when a
// concurrent write invalidates the transaction.
func (r *CartRepository) watch(ctx context.Context, key string, txn func(tx *redis.Tx) error) error {
	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txn, key)
		if err != redis.TxFailedErr {
			return err
		}
	}
	return fmt.Errorf("cart transaction on %s: too many conflicts", key)
}

func loadCart(ctx context.Context, tx *redis.Tx, key string) (*models.Cart, error) {
	data, err := tx.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) saveCart(ctx context.Context, tx *redis.Tx, key string, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, r.ttl)
		return nil
	})
	return err
}

// UpsertAdd merges delta into the entry for productID, creating it on first
// add. A resulting quantity below 1 fails with ErrInvalidQuantity and leaves
// the cart untouched.
func (r *CartRepository) UpsertAdd(ctx context.Context, userID, productID uuid.UUID, delta int) (*models.CartEntry, error) {
	key := r.key(userID)
	var entry models.CartEntry

	txn := func(tx *redis.Tx) error {
		cart, err := loadCart(ctx, tx, key)
		if err != nil {
			return err
		}
		if cart == nil {
			cart = &models.Cart{UserID: userID}
		}

		if i := cart.FindByProduct(productID); i >= 0 {
			if cart.Entries[i].Quantity+delta < 1 {
				return ErrInvalidQuantity
			}
			cart.Entries[i].Quantity += delta
			entry = cart.Entries[i]
		} else {
			if delta < 1 {
				return ErrInvalidQuantity
			}
			entry = models.CartEntry{
				EntryID:   uuid.New(),
				ProductID: productID,
				Quantity:  delta,
			}
			cart.Entries = append(cart.Entries, entry)
		}

		return r.saveCart(ctx, tx, key, cart)
	}

	if err := r.watch(ctx, key, txn); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SetQuantity replaces the quantity of the entry with entryID.
func (r *CartRepository) SetQuantity(ctx context.Context, userID, entryID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	key := r.key(userID)

	txn := func(tx *redis.Tx) error {
		cart, err := loadCart(ctx, tx, key)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrEntryNotFound
		}

		i := cart.FindByEntry(entryID)
		if i < 0 {
			return ErrEntryNotFound
		}
		cart.Entries[i].Quantity = quantity

		return r.saveCart(ctx, tx, key, cart)
	}

	return r.watch(ctx, key, txn)
}

// Remove deletes the entry with entryID if it exists. Missing entries are not
// an error.
func (r *CartRepository) Remove(ctx context.Context, userID, entryID uuid.UUID) (bool, error) {
	key := r.key(userID)
	removed := false

	txn := func(tx *redis.Tx) error {
		cart, err := loadCart(ctx, tx, key)
		if err != nil {
			return err
		}
		if cart == nil {
			return nil
		}

		i := cart.FindByEntry(entryID)
		if i < 0 {
			return nil
		}
		cart.Entries = append(cart.Entries[:i], cart.Entries[i+1:]...)
		removed = true

		return r.saveCart(ctx, tx, key, cart)
	}

	if err := r.watch(ctx, key, txn); err != nil {
		return false, err
	}
	return removed, nil
}

// Entries returns the user's entries in insertion order. A missing cart is an
// empty slice, not an error.
func (r *CartRepository) Entries(ctx context.Context, userID uuid.UUID) ([]models.CartEntry, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return cart.Entries, nil
}

// ClearFor deletes the whole cart and reports how many entries it held.
func (r *CartRepository) ClearFor(ctx context.Context, userID uuid.UUID) (int, error) {
	key := r.key(userID)
	deleted := 0

	txn := func(tx *redis.Tx) error {
		cart, err := loadCart(ctx, tx, key)
		if err != nil {
			return err
		}
		if cart == nil {
			return nil
		}
		deleted = len(cart.Entries)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}

	if err := r.watch(ctx, key, txn); err != nil {
		return 0, err
	}
	return deleted, nil
}

// Settle reads the current entries, hands them to fn, and clears the cart in
// the same WATCH transaction when fn succeeds. If fn fails the cart is left
// as-is. A write that lands between the read and the clear aborts EXEC and
// the sequence restarts with the fresh entries, so a concurrent add is either
// settled or survives in the cart, never lost.
func (r *CartRepository) Settle(ctx context.Context, userID uuid.UUID, fn func(entries []models.CartEntry) error) error {
	key := r.key(userID)

	txn := func(tx *redis.Tx) error {
		cart, err := loadCart(ctx, tx, key)
		if err != nil {
			return err
		}

		var entries []models.CartEntry
		if cart != nil {
			entries = cart.Entries
		}
		if err := fn(entries); err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}

	return r.watch(ctx, key, txn)
}
