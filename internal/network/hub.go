package network

import (
	"sync"
	"sync/atomic"

	"wander-server/pkg/api"
)

// subscriberBuffer - сколько кадров может накопиться у медленного клиента
const subscriberBuffer = 64

// Broadcaster занимается только рассылкой кадров подписчикам.
// Никогда не блокирует отправителя: если канал клиента полон, кадр теряется.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ClientID -> Личный канал
	subscribers map[string]chan api.ServerResponse

	dropped atomic.Uint64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для клиента (браузер, терминал, тест)
func (b *Broadcaster) Register(clientID string) <-chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Переподключение с тем же ID: старый канал закрываем
	if old, ok := b.subscribers[clientID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, subscriberBuffer)
	b.subscribers[clientID] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[clientID]; ok {
		close(ch)
		delete(b.subscribers, clientID)
	}
}

// SendTo отправляет сообщение конкретному клиенту (Unicast)
func (b *Broadcaster) SendTo(clientID string, msg api.ServerResponse) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[clientID]
	if !ok {
		return false
	}
	return b.offer(ch, msg)
}

// Broadcast отправляет всем
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		b.offer(ch, msg)
	}
}

func (b *Broadcaster) offer(ch chan api.ServerResponse, msg api.ServerResponse) bool {
	select {
	case ch <- msg:
		return true
	default:
		// Пропускаем медленных клиентов
		b.dropped.Add(1)
		return false
	}
}

// HasSubscriber проверяет, подключен ли клиент
func (b *Broadcaster) HasSubscriber(clientID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[clientID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Dropped сколько сообщений было выброшено из-за переполненных каналов
func (b *Broadcaster) Dropped() uint64 {
	return b.dropped.Load()
}
