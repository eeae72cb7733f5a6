package events

const defaultQueueSize = 256
