package ringlog

import (
	"os"
	"sync"

	"github.com/petermattis/goid"
)

// maxGlobalTags bounds the process-global tag set.
const maxGlobalTags = 16

// Build metadata injected at link time, e.g.
//
//	go build -ldflags "-X github.com/calder-robotics/ringlog.gitHash=$(git rev-parse --short HEAD) \
//	                   -X github.com/calder-robotics/ringlog.buildType=release"
var (
	gitHash   = "unknown"
	buildType = "unknown"
)

var processID = uint32(os.Getpid())

// goroutineContext is one goroutine's slice of the registry: the scoped tag
// stack, the goroutine name and the cached thread id. It is only ever
// written by its owning goroutine, so none of it is synchronized.
type goroutineContext struct {
	tags       [MaxTags]Tag
	tagCount   int
	threadName [threadNameLen]byte
	threadID   uint32
}

// LogContext supplies thread identity and the full tag set for every record
// assembled by the front end. A single process-wide instance exists; use
// Context to reach it.
//
// The global tag set is read under a shared lock on every log call and
// mutated under an exclusive lock by the rare Set/Remove operations.
// Per-goroutine state is keyed by goroutine id; Go never reuses goroutine
// ids, so state can never bleed into another goroutine.
type LogContext struct {
	mu          sync.RWMutex
	globalTags  [maxGlobalTags]Tag
	globalCount int
	processName string
	appVersion  string

	states sync.Map // goroutine id -> *goroutineContext
}

var (
	contextOnce sync.Once
	contextInst *LogContext
)

// Context returns the process-wide registry, creating it on first use.
func Context() *LogContext {
	contextOnce.Do(func() { contextInst = &LogContext{} })
	return contextInst
}

// SetGlobalTag upserts a tag attached to every record from every goroutine.
// Last write wins for an existing key. An empty key is ignored. The set is
// bounded; once maxGlobalTags distinct keys exist, new keys are dropped.
func (c *LogContext) SetGlobalTag(key, value string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i < c.globalCount; i++ {
		if c.globalTags[i].KeyString() == key {
			copyCString(c.globalTags[i].Value[:], value)
			return
		}
	}
	if c.globalCount < maxGlobalTags {
		c.globalTags[c.globalCount] = makeTag(key, value)
		c.globalCount++
	}
}

// RemoveGlobalTag removes a global tag by key. The last entry is swapped
// into the hole, so the set's order is not stable across removals.
func (c *LogContext) RemoveGlobalTag(key string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i < c.globalCount; i++ {
		if c.globalTags[i].KeyString() == key {
			last := c.globalCount - 1
			if i != last {
				c.globalTags[i] = c.globalTags[last]
			}
			c.globalCount--
			return
		}
	}
}

// SetProcessName records the process name, available to sinks and callbacks.
func (c *LogContext) SetProcessName(name string) {
	c.mu.Lock()
	c.processName = name
	c.mu.Unlock()
}

// ProcessName returns the recorded process name.
func (c *LogContext) ProcessName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.processName
}

// SetAppVersion records the application version.
func (c *LogContext) SetAppVersion(version string) {
	c.mu.Lock()
	c.appVersion = version
	c.mu.Unlock()
}

// AppVersion returns the recorded application version.
func (c *LogContext) AppVersion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.appVersion
}

// GitHash returns the git revision injected at link time.
func (c *LogContext) GitHash() string { return gitHash }

// BuildType returns the build type injected at link time.
func (c *LogContext) BuildType() string { return buildType }

// state returns the calling goroutine's context, creating it (and resolving
// the thread id) on first use.
func (c *LogContext) state() *goroutineContext {
	id := goid.Get()
	if v, ok := c.states.Load(id); ok {
		return v.(*goroutineContext)
	}
	st := &goroutineContext{threadID: currentThreadID()}
	actual, _ := c.states.LoadOrStore(id, st)
	return actual.(*goroutineContext)
}

// SetThreadName names the calling goroutine. The name is truncated to 31
// bytes and appears on every record the goroutine produces.
func (c *LogContext) SetThreadName(name string) {
	st := c.state()
	copyCString(st.threadName[:], name)
}

// ThreadName returns the calling goroutine's name.
func (c *LogContext) ThreadName() string {
	return string(cstr(c.state().threadName[:]))
}

// ThreadID returns the calling goroutine's cached thread id.
func (c *LogContext) ThreadID() uint32 {
	return c.state().threadID
}

// PushScopedTag attaches (key, value) to the calling goroutine until a
// matching PopScopedTag. The stack is bounded by MaxTags; overflow pushes
// are dropped. An empty key is ignored.
func (c *LogContext) PushScopedTag(key, value string) {
	if key == "" {
		return
	}
	st := c.state()
	if st.tagCount >= MaxTags {
		return
	}
	st.tags[st.tagCount] = makeTag(key, value)
	st.tagCount++
}

// PopScopedTag removes the newest scoped tag whose key matches. With
// distinct keys in the active set this is exact; with duplicate keys the
// behavior is LIFO by key.
func (c *LogContext) PopScopedTag(key string) {
	if key == "" {
		return
	}
	st := c.state()
	for i := st.tagCount - 1; i >= 0; i-- {
		if st.tags[i].KeyString() == key {
			last := st.tagCount - 1
			if i != last {
				st.tags[i] = st.tags[last]
			}
			st.tagCount--
			return
		}
	}
}

// ResetThreadContext discards the calling goroutine's scoped tags, name and
// cached thread id. Useful for goroutine pools that recycle workers.
func (c *LogContext) ResetThreadContext() {
	c.states.Delete(goid.Get())
}

// fillRecord stamps rec with the goroutine identity and a point-in-time tag
// snapshot: global tags first (shared lock), then the goroutine's scoped
// stack, stopping once the record's tag array is full. No de-duplication.
func (c *LogContext) fillRecord(rec *Record) {
	st := c.state()
	rec.ProcessID = processID
	rec.ThreadID = st.threadID
	rec.ThreadName = st.threadName

	count := 0
	c.mu.RLock()
	for i := 0; i < c.globalCount && count < MaxTags; i++ {
		rec.Tags[count] = c.globalTags[i]
		count++
	}
	c.mu.RUnlock()
	for i := 0; i < st.tagCount && count < MaxTags; i++ {
		rec.Tags[count] = st.tags[i]
		count++
	}
	rec.TagCount = uint8(count)
}

// ScopedTag attaches a tag to the creating goroutine for a bounded region
// of control flow. Close must run on the same goroutine, typically via
// defer:
//
//	tag := ringlog.NewScopedTag("req", "456")
//	defer tag.Close()
type ScopedTag struct {
	key string
}

// NewScopedTag pushes (key, value) onto the calling goroutine's tag stack
// and returns the handle that owns the pop.
func NewScopedTag(key, value string) *ScopedTag {
	Context().PushScopedTag(key, value)
	return &ScopedTag{key: key}
}

// Close pops the tag. Idempotence is not provided; call it exactly once.
func (t *ScopedTag) Close() {
	Context().PopScopedTag(t.key)
}
