package services

import (
	"fmt"
	"log"
	"time"

	"rental_manager/internal/redis"
	"rental_manager/internal/repository"
	"rental_manager/pkg/whatsapp"
)

// OverdueService periodically sweeps for rentals past their end
// datetime and notifies the customer over WhatsApp. A redis marker
// keeps each order from being re-notified within the marker TTL.
type OverdueService interface {
	SweepOnce() error
	Run(interval time.Duration, stop <-chan struct{})
}

type overdueService struct {
	orderRepo repository.OrderRepository
	cache     *redis.Client
	client    *whatsapp.Client
	markerTTL time.Duration
	now       func() time.Time
}

func NewOverdueService(orderRepo repository.OrderRepository, cache *redis.Client, client *whatsapp.Client, markerTTL time.Duration) OverdueService {
	return &overdueService{
		orderRepo: orderRepo,
		cache:     cache,
		client:    client,
		markerTTL: markerTTL,
		now:       time.Now,
	}
}

func (s *overdueService) SweepOnce() error {
	orders, err := s.orderRepo.GetOverdue(s.now())
	if err != nil {
		return err
	}

	for _, order := range orders {
		if order.Customer == nil || order.Customer.Phone == "" {
			continue
		}

		notified, err := s.cache.WasOverdueNotified(order.ID)
		if err != nil {
			log.Printf("Warning: overdue marker lookup failed for order %d: %v", order.ID, err)
			continue
		}
		if notified {
			continue
		}

		message := fmt.Sprintf(
			"Hello %s, your rental %s was due back on %s. Please return the equipment or contact the branch.",
			order.Customer.Name, order.InvoiceNumber, order.EndAt.Format("02 Jan 2006 15:04"),
		)
		if err := s.client.SendTextMessage(order.Customer.Phone, message); err != nil {
			log.Printf("Warning: failed to notify customer for order %d: %v", order.ID, err)
			continue
		}

		if err := s.cache.MarkOverdueNotified(order.ID, s.markerTTL); err != nil {
			log.Printf("Warning: failed to set overdue marker for order %d: %v", order.ID, err)
		}
	}
	return nil
}

// Run polls at the given interval until stop is closed.
func (s *overdueService) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.SweepOnce(); err != nil {
				log.Printf("Warning: overdue sweep failed: %v", err)
			}
		case <-stop:
			return
		}
	}
}
