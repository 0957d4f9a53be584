// Package handler serves the preview websocket: one renderer per
// connection, driven at a fixed tick rate, shipping RGBA frames to the
// browser canvas and applying camera input between ticks.
package handler

import (
	"encoding/binary"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dkyazzentwatwa/sc-ios/internal/config"
	"github.com/dkyazzentwatwa/sc-ios/internal/demo"
	"github.com/dkyazzentwatwa/sc-ios/internal/logging"
	"github.com/dkyazzentwatwa/sc-ios/internal/render"
	"github.com/dkyazzentwatwa/sc-ios/internal/tileset"
)

const (
	webSocketReadBufferSize  = 4096
	webSocketWriteBufferSize = 64 * 1024

	// Binary message tags, first byte of every server frame.
	msgFrame   = 1
	msgMinimap = 2

	// Minimap refresh cadence in ticks; the minimap runs slower than the
	// main pipeline.
	minimapInterval = 16
)

// controlMessage is the JSON the web client sends.
type controlMessage struct {
	Type    string  `json:"type"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Zoom    float64 `json:"zoom"`
	On      bool    `json:"on"`
	Tileset int     `json:"tileset"`
}

// Stream returns the /stream websocket handler.
func Stream(cfg *config.Config) http.HandlerFunc {
	log := logging.Subsystem("stream")

	return func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{
			ReadBufferSize:  webSocketReadBufferSize,
			WriteBufferSize: webSocketWriteBufferSize,
			CheckOrigin:     func(*http.Request) bool { return true },
		}

		wsConn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("upgrade websocket: %v", err)
			return
		}
		defer wsConn.Close()

		width := queryInt(r, "width", cfg.Renderer.DefaultWidth)
		height := queryInt(r, "height", cfg.Renderer.DefaultHeight)
		width = clamp(width, 1, cfg.Renderer.MaxWidth)
		height = clamp(height, 1, cfg.Renderer.MaxHeight)

		sess, err := newSession(cfg, width, height)
		if err != nil {
			log.Error("session setup: %v", err)
			return
		}

		log.Info("stream open: %dx%d from %s", width, height, r.RemoteAddr)
		sess.run(wsConn, log)
		log.Info("stream closed: %s", r.RemoteAddr)
	}
}

// session owns one connection's renderer and scene. Everything runs on the
// connection goroutine; the read pump only forwards control messages.
type session struct {
	renderer *render.Renderer
	scene    *demo.Scene
	tickRate int

	rgba    []byte
	payload []byte
}

func newSession(cfg *config.Config, width, height int) (*session, error) {
	var table *tileset.Table
	tsIndex := cfg.Renderer.Tileset

	if cfg.Renderer.DataDir != "" {
		table = tileset.NewTable()
		loaded := table.LoadAll(tileset.DirSource{Dir: cfg.Renderer.DataDir})
		if loaded == 0 {
			// Fall through to the synthetic tileset; the renderer still
			// comes up rather than aborting the session.
			table = nil
			tsIndex = 0
		}
	}

	scene, err := demo.NewScene(table, tsIndex)
	if err != nil {
		return nil, err
	}

	r := render.New(width, height)
	r.SetTilesets(scene.Table)
	r.SetMapTiles(scene.Tiles, scene.TileW, scene.TileH)
	r.SetSelectionCircles(scene.Circles)
	r.SetPlayerColors(scene.PlayerColors)
	r.SetZoom(cfg.Renderer.DefaultZoom)

	mapW, mapH := r.MapPixelSize()
	r.SetCamera(float64(mapW)/2, float64(mapH)/2)

	if err := r.SetTileset(scene.Tileset); err != nil {
		// NotReady renders the test pattern; keep streaming regardless.
		logging.Subsystem("stream").Warn("tileset unavailable, test pattern only: %v", err)
	}

	return &session{
		renderer: r,
		scene:    scene,
		tickRate: cfg.Renderer.TickRate,
	}, nil
}

func (s *session) run(wsConn *websocket.Conn, log *logging.Logger) {
	controls := make(chan controlMessage, 16)
	done := make(chan struct{})

	go readPump(wsConn, controls, done, log)

	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-done:
			return
		case msg := <-controls:
			s.apply(msg, log)
			continue
		case <-ticker.C:
		}

		snap := s.scene.Advance(tick)
		s.renderer.Tick(snap)

		s.rgba = s.renderer.AppendRGBA(s.rgba[:0])
		w, h := s.renderer.Size()
		if err := s.send(wsConn, msgFrame, s.rgba, w, h); err != nil {
			log.Debug("write frame: %v", err)
			return
		}

		if tick%minimapInterval == 0 {
			pix, mw, mh := s.renderer.Minimap(snap)
			if err := s.send(wsConn, msgMinimap, pix, mw, mh); err != nil {
				log.Debug("write minimap: %v", err)
				return
			}
		}
		tick++
	}
}

func (s *session) apply(msg controlMessage, log *logging.Logger) {
	switch msg.Type {
	case "camera":
		s.renderer.SetCamera(msg.X, msg.Y)
	case "zoom":
		s.renderer.SetZoom(msg.Zoom)
	case "select":
		s.scene.SetSelectAll(msg.On)
	case "tileset":
		if err := s.renderer.SetTileset(msg.Tileset); err != nil {
			log.Warn("set tileset: %v", err)
		}
	default:
		log.Debug("unknown control message %q", msg.Type)
	}
}

// send writes one tagged binary message: tag, u32 width, u32 height, pixels.
func (s *session) send(wsConn *websocket.Conn, tag byte, pix []byte, w, h int) error {
	need := 9 + len(pix)
	if cap(s.payload) < need {
		s.payload = make([]byte, 0, need)
	}
	p := s.payload[:9]
	p[0] = tag
	binary.LittleEndian.PutUint32(p[1:5], uint32(w))
	binary.LittleEndian.PutUint32(p[5:9], uint32(h))
	s.payload = append(p, pix...)
	return wsConn.WriteMessage(websocket.BinaryMessage, s.payload)
}

func readPump(wsConn *websocket.Conn, controls chan<- controlMessage, done chan<- struct{}, log *logging.Logger) {
	defer close(done)
	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			return
		}
		var msg controlMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug("bad control message: %v", err)
			continue
		}
		select {
		case controls <- msg:
		default: // drop input rather than stall the render loop
		}
	}
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
