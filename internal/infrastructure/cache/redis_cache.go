package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	"github.com/jhoicas/fuel-dashboard-api/pkg/logger"
)

const (
	keyPrefix        = "dashboard"
	globalVersionKey = keyPrefix + ":ver:global"
)

// RedisDashboardCache guarda el dashboard serializado en JSON.
//
// Cada organización tiene un contador de versión que forma parte de la clave; invalidar es
// incrementarlo, así las entradas viejas dejan de leerse y expiran por TTL. El contador
// global cubre cambios en el catálogo de combustibles, que afectan a todas.
type RedisDashboardCache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisDashboardCache crea el cliente. No conecta hasta el primer comando (ver Ping).
func NewRedisDashboardCache(addr, password string, db int, log *logger.Logger) *RedisDashboardCache {
	if log == nil {
		log = logger.Nop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisDashboardCache{client: client, log: log}
}

func (c *RedisDashboardCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisDashboardCache) Close() error {
	return c.client.Close()
}

// Get devuelve también la clave versionada leída; en un fallo es "" y no se escribe.
func (c *RedisDashboardCache) Get(ctx context.Context, key reporting.DashboardKey) (*dto.DashboardResponse, string, error) {
	k, err := c.entryKey(ctx, key)
	if err != nil {
		return nil, "", err
	}
	val, err := c.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		return nil, k, nil
	}
	if err != nil {
		return nil, "", err
	}

	var resp dto.DashboardResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		// Entrada corrupta: se sobrescribe con el cálculo nuevo.
		c.log.Warn().Err(err).Str("key", k).Msg("cache: entrada ilegible")
		return nil, k, nil
	}
	return &resp, k, nil
}

// Set escribe en la entrada que resolvió Get, sin volver a leer las versiones.
func (c *RedisDashboardCache) Set(ctx context.Context, entry string, value *dto.DashboardResponse, ttl time.Duration) error {
	if value == nil || entry == "" {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, entry, payload, ttl).Err()
}

// Invalidate incrementa la versión de la organización, o la global si organizationID es "".
func (c *RedisDashboardCache) Invalidate(ctx context.Context, organizationID string) {
	vk := globalVersionKey
	if organizationID != "" {
		vk = orgVersionKey(organizationID)
	}
	if err := c.client.Incr(ctx, vk).Err(); err != nil {
		c.log.Warn().Err(err).Str("organization_id", organizationID).Msg("cache: no se pudo invalidar el dashboard")
	}
}

func (c *RedisDashboardCache) entryKey(ctx context.Context, key reporting.DashboardKey) (string, error) {
	vals, err := c.client.MGet(ctx, orgVersionKey(key.OrganizationID), globalVersionKey).Result()
	if err != nil {
		return "", fmt.Errorf("leer versiones: %w", err)
	}
	return buildKey(key, parseVersion(vals[0]), parseVersion(vals[1])), nil
}

func orgVersionKey(organizationID string) string {
	return keyPrefix + ":ver:" + organizationID
}

func buildKey(key reporting.DashboardKey, orgVersion, globalVersion int64) string {
	return fmt.Sprintf("%s:%s:v%d:g%d:%s", keyPrefix, key.OrganizationID, orgVersion, globalVersion, key.String())
}

// parseVersion MGET devuelve nil para claves inexistentes: versión 0.
func parseVersion(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
